package config

import (
	"sync"
	"tehnika_server/structs"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Tehnika_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "tehnika_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				DialTimeout:  getEnvAsTimeDuration("DB_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
				DefaultTTL:      getEnvAsTimeDuration("REDIS_DEFAULT_TTL", 10*time.Minute),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 12*time.Hour),
			},
			Storage: &structs.StorageConfig{
				Endpoint:     getEnvAsString("STORAGE_ENDPOINT", "s3.eu-central-1.amazonaws.com"),
				Region:       getEnvAsString("STORAGE_REGION", "eu-central-1"),
				Bucket:       getEnvAsString("STORAGE_BUCKET", "tehnika-images"),
				AccessKey:    getEnvAsString("STORAGE_ACCESS_KEY", ""),
				SecretKey:    getEnvAsString("STORAGE_SECRET_KEY", ""),
				UseSSL:       getEnvAsBool("STORAGE_USE_SSL", true),
				UploadExpiry: getEnvAsTimeDuration("STORAGE_UPLOAD_EXPIRY", 15*time.Minute),
				AccessExpiry: getEnvAsTimeDuration("STORAGE_ACCESS_EXPIRY", 1*time.Hour),
				MaxObjectMB:  int64(getEnvAsInt("STORAGE_MAX_OBJECT_MB", 10)),
			},
			Email: &structs.EmailConfig{
				ApiKey:  getEnvAsString("EMAIL_API_KEY", ""),
				From:    getEnvAsString("EMAIL_FROM", "alerts@tehnika.example"),
				AlertTo: getEnvAsSlice("EMAIL_ALERT_TO", []string{}),
				Enabled: getEnvAsBool("EMAIL_ENABLED", false),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
				AuthLimit:     getEnvAsInt("RATE_LIMIT_AUTH_LIMIT", 10),
				AuthWindow:    getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", 1*time.Minute),
				AdminLimit:    getEnvAsInt("RATE_LIMIT_ADMIN_LIMIT", 120),
				AdminWindow:   getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", 1*time.Minute),
				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL_LIMIT", 300),
				GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", 1*time.Minute),
			},
			Reconciler: &structs.ReconcilerConfig{
				Interval:        getEnvAsTimeDuration("RECONCILER_INTERVAL", 15*time.Minute),
				PendingImageTTL: getEnvAsTimeDuration("RECONCILER_PENDING_IMAGE_TTL", 1*time.Hour),
				AlertThreshold:  getEnvAsInt("RECONCILER_ALERT_THRESHOLD", 5),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
