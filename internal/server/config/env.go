package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is an intermediate DTO for environment variables. Pointer fields
// distinguish "unset" from "set to zero value" so the overlay only touches
// values that are actually present in the environment.
type envConfig struct {
	EndpointAddr            *string        `env:"RUN_ADDRESS"`
	DatabaseDSN             *string        `env:"DATABASE_DSN"`
	BaseURL                 *string        `env:"BASE_URL"`
	EmailFrom               *string        `env:"EMAIL_FROM"`
	ResendAPIKey            *string        `env:"RESEND_API_KEY"`
	SessionSecret           *string        `env:"SESSION_SECRET"`
	SessionValidityDuration *time.Duration `env:"SESSION_VALIDITY_DURATION"`
	OTPValidityDuration     *time.Duration `env:"OTP_VALIDITY_DURATION"`
	DevMode                 *bool          `env:"DEV_MODE"`
}

// parseEnv overlays configuration values from environment variables onto the
// provided Config. Unset variables leave the current values untouched.
func parseEnv(config *Config) {

	c := &envConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.BaseURL != nil {
		config.BaseURL = *c.BaseURL
	}
	if c.EmailFrom != nil {
		config.EmailFrom = *c.EmailFrom
	}
	if c.ResendAPIKey != nil {
		config.ResendAPIKey = *c.ResendAPIKey
	}
	if c.SessionSecret != nil {
		config.SessionSecret = *c.SessionSecret
	}
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = *c.SessionValidityDuration
	}
	if c.OTPValidityDuration != nil {
		config.OTPValidityDuration = *c.OTPValidityDuration
	}
	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
}
