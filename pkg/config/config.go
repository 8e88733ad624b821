package config

import "os"

type Config struct {
	Port          string
	Env           string
	JWTSecret     string
	StudentDomain string // regular members must register with this email domain
	StaffDomain   string // moderator/admin emails must end with this domain
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
		StudentDomain: getEnv("STUDENT_DOMAIN", "vossie.net"),
		StaffDomain:   getEnv("STAFF_DOMAIN", "eduvos.com"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
