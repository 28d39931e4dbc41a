package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		wantErr bool
	}{
		{name: "development", env: "development", wantErr: false},
		{name: "production", env: "production", wantErr: false},
		{name: "testing", env: "testing", wantErr: false},
		{name: "empty", env: "", wantErr: true},
		{name: "unknown", env: "staging", wantErr: true},
		{name: "case sensitive", env: "Production", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnv(tt.env)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGinMode(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		mode  string
		want  string
	}{
		{name: "debug flag forces debug", debug: true, mode: "release", want: "debug"},
		{name: "server mode wins without debug", debug: false, mode: "release", want: "release"},
		{name: "test mode passes through", debug: false, mode: "test", want: "test"},
		{name: "default is release", debug: false, mode: "", want: "release"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				App:    AppConfig{Debug: tt.debug},
				Server: ServerConfig{Mode: tt.mode},
			}
			assert.Equal(t, tt.want, cfg.GinMode())
		})
	}
}
