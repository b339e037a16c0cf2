package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantHours  int
		wantErr    string
	}{
		{name: "defaults", secret: "test-secret-key", wantHours: 24},
		{name: "custom expiration", secret: "test-secret-key", expiration: "12", wantHours: 12},
		{name: "one week", secret: "test-secret-key", expiration: "168", wantHours: 168},
		{name: "missing secret", wantErr: "JWT_SECRET"},
		{name: "non-numeric expiration", secret: "s", expiration: "soon", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "zero expiration", secret: "s", expiration: "0", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "negative expiration", secret: "s", expiration: "-1", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "float expiration", secret: "s", expiration: "12.5", wantErr: "JWT_EXPIRATION_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.secret == "" {
				t.Setenv("JWT_SECRET", "")
			} else {
				t.Setenv("JWT_SECRET", tt.secret)
			}
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
