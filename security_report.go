package authcore

import "time"

// SecurityReport summarizes the engine's active security posture for
// operators and startup logs. It never contains key material.
type SecurityReport struct {
	SigningAlgorithm   string
	TokenTTL           time.Duration
	Leeway             time.Duration
	Argon2             PasswordConfigReport
	MinPasswordLength  int
	PepperConfigured   bool
	AutoLoginActive    bool
	RateLimitingActive bool
	AuditActive        bool
	MetricsActive      bool
}

// PasswordConfigReport mirrors the active argon2id cost parameters.
type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// SecurityReport returns the current posture snapshot.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		SigningAlgorithm:  e.config.Token.SigningMethod,
		TokenTTL:          e.config.Token.TTL,
		Leeway:            e.config.Token.Leeway,
		MinPasswordLength: e.config.Password.MinLength,
		PepperConfigured:  len(e.config.Password.Pepper) > 0,
		Argon2: PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Time:        e.config.Password.Time,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		},
		AutoLoginActive:    e.config.Account.AutoLogin,
		RateLimitingActive: e.rateLimiter != nil,
		AuditActive:        e.audit != nil,
		MetricsActive:      e.metrics.Enabled(),
	}
}
