package container

import (
	"fmt"
	"strings"
)

// Lifetime decides what happens to the value a factory returns.
type Lifetime int

const (
	// Singleton values are cached by name after the first construction and
	// disposed by Close. Unless Lazy is set, Initialize builds them.
	Singleton Lifetime = iota

	// Transient values are handed straight to the caller. Each Get runs the
	// factory again and the container keeps no reference.
	Transient
)

var lifetimeNames = [...]string{
	Singleton: "Singleton",
	Transient: "Transient",
}

// ParseLifetime maps a lifetime name, in any letter case, to its Lifetime.
func ParseLifetime(s string) (Lifetime, error) {
	for l, name := range lifetimeNames {
		if strings.EqualFold(s, name) {
			return Lifetime(l), nil
		}
	}
	return 0, LifetimeError{Value: s}
}

func (l Lifetime) String() string {
	if l.IsValid() {
		return lifetimeNames[l]
	}
	return fmt.Sprintf("Unknown(%d)", int(l))
}

// IsValid reports whether l is Singleton or Transient.
func (l Lifetime) IsValid() bool {
	return l >= 0 && int(l) < len(lifetimeNames)
}

// MarshalText encodes l by name, which also covers JSON and YAML.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
