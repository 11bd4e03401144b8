package structs

import "time"

type Config struct {
	Server     *ServerConfig
	Cors       *CorsConfig
	Database   *DatabaseConfig
	Cache      *CacheConfig
	Auth       *AuthConfig
	Storage    *StorageConfig
	Email      *EmailConfig
	Reconciler *ReconcilerConfig
	RateLimit  *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // Tehnika
	Environment    string        // development, production
	Port           string        // :8084
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	DialTimeout  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DefaultTTL      time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

// StorageConfig holds the S3-compatible object storage settings. Upload bytes
// never pass through this server; clients POST directly to presigned URLs.
type StorageConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	UploadExpiry time.Duration // presigned POST policy lifetime
	AccessExpiry time.Duration // presigned GET URL lifetime
	MaxObjectMB  int64
}

type EmailConfig struct {
	ApiKey  string
	From    string
	AlertTo []string
	Enabled bool
}

type RateLimitConfig struct {
	Enabled       bool
	AuthLimit     int
	AuthWindow    time.Duration
	AdminLimit    int
	AdminWindow   time.Duration
	GeneralLimit  int
	GeneralWindow time.Duration
}

type ReconcilerConfig struct {
	Interval        time.Duration // sweep cadence
	PendingImageTTL time.Duration // pending image rows older than this are reaped
	AlertThreshold  int           // failed deletion attempts before an email alert
}
