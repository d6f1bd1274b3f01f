// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the access token lifetime.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes is the refresh token lifetime.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// ActivationTokenLifetimeHours is the lifetime of the signed activation
	// token embedded in verification emails.
	ActivationTokenLifetimeHours int `mapstructure:"activation_token_lifetime_hours" validate:"required,gt=0"`
}

// MailConfig contains SMTP delivery and mailbox-probe settings.
type MailConfig struct {
	SMTPHost string `mapstructure:"smtp_host" validate:"required"`
	SMTPPort int    `mapstructure:"smtp_port" validate:"required,gt=0,lt=65536"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`

	// FromAddress is the sender of activation emails.
	FromAddress string `mapstructure:"from_address" validate:"required,email"`

	// ActivationBaseURL is prefixed to the activation token to build the
	// link embedded in the email, e.g. https://app.example.com/activate.
	ActivationBaseURL string `mapstructure:"activation_base_url" validate:"required,url"`

	// ProbeEnabled gates the live mailbox-existence probe. The probe is
	// best-effort and many mail servers reject bare RCPT verification, so
	// deployments can turn it off without code changes.
	ProbeEnabled bool `mapstructure:"probe_enabled"`

	// ProbeTimeoutSeconds bounds the whole probe (MX lookup, dial, SMTP
	// exchange) so a slow mail server cannot stall registration.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" validate:"required,gt=0"`
}
