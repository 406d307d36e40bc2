package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/palabra/internal/config"
)

// ProgressBackend overrides progress.backend from the command line.
type ProgressBackend string

func (b *ProgressBackend) Set(val string) error {
	for _, backend := range allProgressBackends {
		if val == string(backend) {
			*b = backend
			return nil
		}
	}
	return fmt.Errorf("invalid progress backend: %s", val)
}

func (b ProgressBackend) String() string {
	return string(b)
}

func (b *ProgressBackend) Type() string {
	return "backend"
}

var (
	_                   pflag.Value = (*ProgressBackend)(nil)
	allProgressBackends             = []ProgressBackend{
		config.ProgressBackendNone,
		config.ProgressBackendYAML,
		config.ProgressBackendMySQL,
	}
)
