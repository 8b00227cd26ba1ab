package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseValidConfig returns a fully-valid configuration object that callers
// can tweak inside table tests.
func baseValidConfig() Config {
	return Config{
		AppPort:         8080,
		BcryptCost:      12,
		LoginRatePerMin: 5,
		LogLevel:        "info",
		LogFormat:       "json",
		MongoURI:        "mongodb://localhost:27017",
		MongoDBName:     "test",
		JWTSecret:       "this-is-a-super-secret-jwt-key-with-32-plus-chars",
		JWTAlgorithm:    "HS256",
		TokenTTLHours:   168,
	}
}

// clearConfigEnvVars removes every environment variable that the Config loader
// consumes so each test starts with a clean slate.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"APP_PORT",
		"BCRYPT_COST",
		"LOGIN_RATE_PER_MIN",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"MONGO_URI",
		"MONGO_DB_NAME",
		"JWT_SECRET",
		"JWT_ALGORITHM",
		"TOKEN_TTL_HOURS",
		"ROUTE_METRICS_ENABLED",
		"REQUEST_LOGGING_ENABLED",
		"DEV_MODE",
	} {
		if err := os.Unsetenv(k); err != nil {
			t.Logf("warning: failed to unset %s: %v", k, err)
		}
	}
}

func TestConfigLoadDefaults(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()

	t.Setenv("DEV_MODE", "true") // bypass JWT secret requirement

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.LoginRatePerMin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, "taxtracker", cfg.MongoDBName)
	assert.Equal(t, "", cfg.JWTSecret) // no default secret
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 168, cfg.TokenTTLHours)
	assert.True(t, cfg.DevMode)
	assert.True(t, cfg.RouteMetricsEnabled)
	assert.True(t, cfg.RequestLoggingEnabled)
}

func TestConfigLoadWithOverride(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()

	t.Setenv("DEV_MODE", "true")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("TOKEN_TTL_HOURS", "24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.AppPort)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
}

func TestConfigCaching(t *testing.T) {
	clearConfigEnvVars(t)
	ResetCache()

	t.Setenv("DEV_MODE", "true")

	cfg1, err := Load()
	require.NoError(t, err)

	// second call should hit the cache
	cfg2, err := Load()
	require.NoError(t, err)

	assert.Equal(t, cfg1, cfg2)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:    "invalid port - zero",
			modify:  func(c *Config) { c.AppPort = 0 },
			wantErr: ErrAppPortRange,
		},
		{
			name:    "invalid port - too high",
			modify:  func(c *Config) { c.AppPort = 70000 },
			wantErr: ErrAppPortRange,
		},
		{
			name:    "bcrypt cost too low",
			modify:  func(c *Config) { c.BcryptCost = 7 },
			wantErr: ErrBcryptCostRange,
		},
		{
			name:    "bcrypt cost too high",
			modify:  func(c *Config) { c.BcryptCost = 17 },
			wantErr: ErrBcryptCostRange,
		},
		{
			name:    "login rate too low",
			modify:  func(c *Config) { c.LoginRatePerMin = 0 },
			wantErr: ErrLoginRatePerMin,
		},
		{
			name:    "empty log level",
			modify:  func(c *Config) { c.LogLevel = "" },
			wantErr: ErrLogLevelEmpty,
		},
		{
			name:    "empty mongo URI",
			modify:  func(c *Config) { c.MongoURI = "" },
			wantErr: ErrMongoURIRequired,
		},
		{
			name:    "empty JWT secret",
			modify:  func(c *Config) { c.JWTSecret = "" },
			wantErr: ErrJWTSecretRequired,
		},
		{
			name:    "JWT secret too short for HS256",
			modify:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: ErrJWTSecretTooShort,
		},
		{
			name:    "unsupported JWT algorithm",
			modify:  func(c *Config) { c.JWTAlgorithm = "RS512" },
			wantErr: ErrJWTAlgorithmUnsupported,
		},
		{
			name:    "zero token TTL",
			modify:  func(c *Config) { c.TokenTTLHours = 0 },
			wantErr: ErrTokenTTLRange,
		},
		{
			name: "dev mode allows empty secret",
			modify: func(c *Config) {
				c.JWTSecret = ""
				c.DevMode = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseValidConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
