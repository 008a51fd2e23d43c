package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// GatewayToken authenticates the messaging-bot gateway that delivers
	// inbound events. AdminUserID gates the user-listing endpoint.
	GatewayToken string
	AdminUserID  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SNSRegion string

	// Networked verification provider credentials. The provider variant is
	// selected once at startup: all three present selects the remote backend,
	// otherwise the offline generator is used. Never mixed per request.
	VerifyAccountID  string
	VerifyAuthSecret string
	VerifyServiceID  string
	VerifyBaseURL    string

	// OfflineStaticCode, when non-empty, pins the offline generator to a fixed
	// code. Honored only by the offline variant and only when set explicitly.
	OfflineStaticCode string

	// RedisAddr enables the per-phone start-request limiter when set.
	RedisAddr     string
	RedisPassword string

	CodeTTLMinutes  int
	MaxCodeAttempts int

	AllowedOrigins []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		GatewayToken: getEnv("GATEWAY_TOKEN", ""),
		AdminUserID:  getEnv("ADMIN_USER_ID", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users: getEnv("DYNAMO_TABLE_USERS", "users"),
		},

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		VerifyAccountID:  getEnv("VERIFY_ACCOUNT_ID", ""),
		VerifyAuthSecret: getEnv("VERIFY_AUTH_SECRET", ""),
		VerifyServiceID:  getEnv("VERIFY_SERVICE_ID", ""),
		VerifyBaseURL:    getEnv("VERIFY_BASE_URL", "https://verify.twilio.com/v2"),

		OfflineStaticCode: getEnv("OFFLINE_STATIC_CODE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CodeTTLMinutes:  getEnvInt("CODE_TTL_MINUTES", 10),
		MaxCodeAttempts: getEnvInt("MAX_CODE_ATTEMPTS", 5),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// RemoteVerifyConfigured reports whether all three networked-provider
// credentials are present.
func (c *Config) RemoteVerifyConfigured() bool {
	return c.VerifyAccountID != "" && c.VerifyAuthSecret != "" && c.VerifyServiceID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
