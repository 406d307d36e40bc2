package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBackend_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    ProgressBackend
		wantErr bool
	}{
		{name: "none", value: "none", want: "none"},
		{name: "mysql", value: "mysql", want: "mysql"},
		{name: "unknown backend", value: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var backend ProgressBackend
			err := backend.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid progress backend")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, backend)
		})
	}
}

func TestProgressBackend_Type(t *testing.T) {
	backend := ProgressBackend("yaml")
	assert.Equal(t, "yaml", backend.String())
	assert.Equal(t, "backend", backend.Type())
}

func TestLoadConfig_ProgressOverride(t *testing.T) {
	useTestConfig(t)
	oldBackend := progressBackend
	progressBackend = "none"
	defer func() { progressBackend = oldBackend }()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Progress.Backend)
}
