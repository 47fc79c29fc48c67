package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Durations are parsed with time.ParseDuration so
// values like "10m" or "1h" work directly in the environment.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	BaseURL       string        // public base URL used to build display-picture links
	MongoURI      string        // MongoDB connection string
	MongoDB       string        // MongoDB database name
	JWTSecret     string        // secret used to sign JWTs
	JWTExpiresIn  time.Duration // lifetime of issued session tokens
	OTPExpiresIn  time.Duration // lifetime of email-verification OTPs
	SigninOTPTTL  time.Duration // lifetime of login second-factor OTPs
	ResetTokenTTL time.Duration // lifetime of password-reset tokens
	BcryptCost    int           // bcrypt cost for password hashing
	CORSOrigin    string        // allowed CORS origin
	ReturnOTP     bool          // include the raw OTP in the signin response (dev only)
	SMTPHost      string        // outbound mail server host; empty disables SMTP
	SMTPPort      string        // outbound mail server port
	SMTPUser      string        // SMTP auth username
	SMTPPassword  string        // SMTP auth password
	SMTPFrom      string        // From address on outgoing mail
	AMQPURL       string        // RabbitMQ URL; empty disables the email queue
}

// Load reads configuration values from environment variables and returns a
// Config. Every value has a development default; JWT_SECRET is required
// when APP_ENV is "prod".
func Load() Config {
	cfg := Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          envStr("APP_PORT", "5000"),
		BaseURL:       envStr("BASE_URL", "http://localhost:5000"),
		MongoURI:      envStr("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       envStr("MONGODB_DB", "userauth"),
		JWTSecret:     envStr("JWT_SECRET", "dev-only-jwt-secret"),
		JWTExpiresIn:  envDur("JWT_EXPIRES_IN", 7*24*time.Hour),
		OTPExpiresIn:  envDur("OTP_EXPIRES_IN", 10*time.Minute),
		SigninOTPTTL:  envDur("SIGNIN_OTP_TTL", 5*time.Minute),
		ResetTokenTTL: envDur("RESET_TOKEN_EXPIRES_IN", time.Hour),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		CORSOrigin:    envStr("CORS_ORIGIN", "http://localhost:3000"),
		ReturnOTP:     envBool("SIGNIN_RETURN_OTP", true),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      envStr("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      envStr("SMTP_FROM", "noreply@localhost"),
		AMQPURL:       firstEnv("RABBITMQ_URL", "AMQP_URL"),
	}
	if cfg.Env == "prod" {
		if os.Getenv("JWT_SECRET") == "" {
			log.Fatal("JWT_SECRET must be set when APP_ENV=prod")
		}
		// Echoing the OTP back to the signin caller is a local/dev
		// convenience and must never be on in production.
		cfg.ReturnOTP = false
	}
	return cfg
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
