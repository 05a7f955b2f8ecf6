package main

import "github.com/yieldgate/sdk-go/internal/cli"

func main() {
	cli.Execute()
}
