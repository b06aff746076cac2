// Package config holds the application's configuration settings.
package config

import "time"

// AppConfig defines environment-based configuration for the application.
// It is loaded once at startup and passed to constructors; no component
// reads the environment on its own.
type AppConfig struct {
	Http      HttpConfig
	Stripe    StripeConfig
	Firestore FirestoreConfig
	Payments  PaymentsConfig
	NewRelic  NewRelicConfig
}

type HttpConfig struct {
	Addr         string        `env:"PAYMENTS_HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `env:"PAYMENTS_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"PAYMENTS_HTTP_WRITE_TIMEOUT" env-default:"15s"`
}

// StripeConfig carries the processor credentials. The secret key has no
// fallback and must be provided; an empty webhook secret switches the
// webhook endpoint into its unverified development mode.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY" env-required:"true"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

type FirestoreConfig struct {
	ProjectID         string `env:"FIRESTORE_PROJECT_ID" env-required:"true"`
	CredentialsFile   string `env:"FIRESTORE_CREDENTIALS_FILE"`
	MentorsCollection string `env:"FIRESTORE_MENTORS_COLLECTION" env-default:"mentors"`
}

type PaymentsConfig struct {
	DefaultCurrency string `env:"PAYMENTS_DEFAULT_CURRENCY" env-default:"usd"`
	DefaultCountry  string `env:"PAYMENTS_DEFAULT_COUNTRY" env-default:"US"`
	DashboardPath   string `env:"PAYMENTS_DASHBOARD_PATH" env-default:"/dashboard"`
}

type NewRelicConfig struct {
	AppName    string `env:"NEW_RELIC_APP_NAME" env-default:"mentor-payments"`
	LicenseKey string `env:"NEW_RELIC_LICENSE_KEY"`
	Enabled    bool   `env:"NEW_RELIC_ENABLED" env-default:"false"`
}
