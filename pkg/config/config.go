package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// Payment gateway (PIX)
	PixAPIBaseURL  string
	PixAccessToken string

	// Fees in BRL
	NegotiationFee  float64
	Highlight24hFee float64
	Highlight7dFee  float64
	PremiumFee      float64

	// Vertex AI moderation
	GCPProjectID    string
	GCPLocation     string
	GCPCredentials  string
	ModerationModel string

	// Services URLs
	AuthServiceURL        string
	CatalogServiceURL     string
	NegotiationServiceURL string
	PaymentServiceURL     string
	PodiumServiceURL      string
	AdminServiceURL       string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "troca"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "troca-media"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		PixAPIBaseURL:  getEnv("PIX_API_BASE_URL", "https://api.mercadopago.com"),
		PixAccessToken: getEnv("PIX_ACCESS_TOKEN", ""),

		NegotiationFee:  getEnvFloat("NEGOTIATION_FEE", 0.49),
		Highlight24hFee: getEnvFloat("HIGHLIGHT_24H_FEE", 4.90),
		Highlight7dFee:  getEnvFloat("HIGHLIGHT_7D_FEE", 17.90),
		PremiumFee:      getEnvFloat("PREMIUM_FEE", 19.90),

		GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:     getEnv("GCP_LOCATION", "us-central1"),
		GCPCredentials:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ModerationModel: getEnv("MODERATION_MODEL", "gemini-2.0-flash-001"),

		AuthServiceURL:        getEnv("AUTH_SERVICE_URL", "http://localhost:8001"),
		CatalogServiceURL:     getEnv("CATALOG_SERVICE_URL", "http://localhost:8002"),
		NegotiationServiceURL: getEnv("NEGOTIATION_SERVICE_URL", "http://localhost:8003"),
		PaymentServiceURL:     getEnv("PAYMENT_SERVICE_URL", "http://localhost:8004"),
		PodiumServiceURL:      getEnv("PODIUM_SERVICE_URL", "http://localhost:8005"),
		AdminServiceURL:       getEnv("ADMIN_SERVICE_URL", "http://localhost:8006"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
