package authcore

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envSpec is the environment surface. Secrets and the TTL are mandatory: a
// process without them must fail at startup, not issue unverifiable tokens.
type envSpec struct {
	SigningSecret string `env:"AUTHCORE_SIGNING_SECRET,notEmpty"`
	SaltSeed      string `env:"AUTHCORE_SALT_SEED,notEmpty"`
	TokenTTLSecs  int64  `env:"AUTHCORE_TOKEN_TTL_SECONDS,notEmpty"`

	Issuer            string `env:"AUTHCORE_TOKEN_ISSUER" envDefault:"authcore"`
	MinPasswordLength int    `env:"AUTHCORE_MIN_PASSWORD_LENGTH" envDefault:"6"`
	AutoLogin         bool   `env:"AUTHCORE_REGISTER_AUTO_LOGIN" envDefault:"true"`
	MetricsEnabled    bool   `env:"AUTHCORE_METRICS_ENABLED" envDefault:"false"`
	AuditEnabled      bool   `env:"AUTHCORE_AUDIT_ENABLED" envDefault:"false"`
	MaxLoginAttempts  int    `env:"AUTHCORE_MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LoginCooldownSecs int64  `env:"AUTHCORE_LOGIN_COOLDOWN_SECONDS" envDefault:"900"`
}

// FromEnv builds a validated Config from process environment variables.
//
// AUTHCORE_SIGNING_SECRET, AUTHCORE_SALT_SEED and AUTHCORE_TOKEN_TTL_SECONDS
// are required; FromEnv returns an error when any is missing or empty so the
// caller can abort startup.
func FromEnv() (Config, error) {
	var spec envSpec
	if err := env.Parse(&spec); err != nil {
		return Config{}, fmt.Errorf("authcore: environment: %w", err)
	}
	if spec.TokenTTLSecs <= 0 {
		return Config{}, fmt.Errorf("authcore: AUTHCORE_TOKEN_TTL_SECONDS must be > 0, got %d", spec.TokenTTLSecs)
	}

	cfg := defaultConfig()
	cfg.Token.Secret = []byte(spec.SigningSecret)
	cfg.Token.TTL = time.Duration(spec.TokenTTLSecs) * time.Second
	cfg.Token.Issuer = spec.Issuer
	cfg.Password.Pepper = []byte(spec.SaltSeed)
	cfg.Password.MinLength = spec.MinPasswordLength
	cfg.Account.AutoLogin = spec.AutoLogin
	cfg.Metrics.Enabled = spec.MetricsEnabled
	cfg.Audit.Enabled = spec.AuditEnabled
	cfg.RateLimit.MaxLoginAttempts = spec.MaxLoginAttempts
	cfg.RateLimit.LoginCooldown = time.Duration(spec.LoginCooldownSecs) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("authcore: environment config invalid: %w", err)
	}
	return cfg, nil
}
