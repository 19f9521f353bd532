package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	// SMTP (notification email)
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FromName     string
	FromEmail    string

	// SMS gateway (Twilio-compatible REST endpoint)
	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string
	SMSAPIBaseURL string

	// Kafka (optional async notification queue; empty broker = inline dispatch)
	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	if os.Getenv("APP_ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Println("[config] .env not loaded:", err)
		}
	}

	return &Config{
		AppPort: get("APP_PORT", "5000"),
		AppEnv:  get("APP_ENV", "dev"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "leave_management_system"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),

		SMTPHost:     get("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:     get("EMAIL_PORT", "587"),
		SMTPUser:     os.Getenv("EMAIL_USER"),
		SMTPPassword: os.Getenv("EMAIL_PASS"),
		FromName:     get("FROM_NAME", "LeaveEase"),
		FromEmail:    get("FROM_EMAIL", "noreply@leaveease.local"),

		SMSAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		SMSAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		SMSFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		SMSAPIBaseURL: get("TWILIO_API_BASE", "https://api.twilio.com"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    get("KAFKA_TOPIC", "leaveease.notifications"),
		KafkaGroupID:  get("KAFKA_GROUP_ID", "leaveease-notifier"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
