// Package cli implements the yieldgate command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	yieldgate "github.com/yieldgate/sdk-go"
	"github.com/yieldgate/sdk-go/config"
)

// flags are the persistent flags shared by every command.
type flags struct {
	configFile string
	envFiles   []string
	baseURL    string
	debug      bool
}

// NewRootCmd builds the yieldgate command tree.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "yieldgate",
		Short: "Command line client for the YieldGate gateway API",
		Long: `yieldgate queries the YieldGate gateway: vaults, transactions, referrals
and authentication. Configuration is read from an optional config file, dotenv
files and YIELDGATE_* environment variables, in that order of precedence.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "", "configuration file path (yaml, json or toml)")
	rootCmd.PersistentFlags().StringSliceVar(&f.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&f.baseURL, "base-url", "", "override the gateway base URL")
	rootCmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newVaultsCmd(f),
		newTransactionsCmd(f),
		newReferralsCmd(f),
		newAuthCmd(f),
		newTokenCmd(),
		newGraphCmd(f),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies the config sources and flag overrides.
func (f *flags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:     f.configFile,
		EnvFiles: f.envFiles,
	})
	if err != nil {
		return config.Config{}, err
	}

	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newClient builds an SDK client logging to the command's stderr.
func (f *flags) newClient(cmd *cobra.Command) (*yieldgate.Client, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
	return yieldgate.New(cmd.Context(), cfg, yieldgate.WithLogger(logger))
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// withClient runs fn with a client that is closed afterwards.
func (f *flags) withClient(cmd *cobra.Command, fn func(ctx context.Context, client *yieldgate.Client) error) error {
	client, err := f.newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(cmd.Context(), client)
}
