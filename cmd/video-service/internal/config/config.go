package config

import (
	"os"
)

type Config struct {
	Port             string
	RedisAddr        string
	AllowedOrigin    string
	TwilioAccountSID string
	TwilioAuthToken  string
}

func LoadConfig() (*Config, error) {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "*"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
