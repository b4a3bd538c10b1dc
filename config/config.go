package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Firebase  FirebaseConfig
	Redis     RedisConfig
	Media     MediaConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For; empty means the peer address
	// is the client IP.
	TrustedProxies []string
}

type DatabaseConfig struct {
	URI                string
	User               string
	Password           string
	Cluster            string
	AppName            string
	Name               string
	UsersCollection    string
	ProjectsCollection string
	Timeout            time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	TokenTTL          time.Duration
	TokenHeader       string
}

// FirebaseConfig is optional. An empty CredentialsPath disables the
// identity check on token issuance.
type FirebaseConfig struct {
	CredentialsPath string
}

type RedisConfig struct {
	URL          string
	RoleCacheTTL time.Duration
}

type MediaConfig struct {
	Provider       string
	MaxUploadBytes int64
	Cloudinary     CloudinaryConfig
	S3             S3Config
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type S3Config struct {
	Bucket        string
	Region        string
	PublicBaseURL string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
	"https://liminal-official.vercel.app",
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", defaultOrigins),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			URI:                getEnv("MONGODB_URI", ""),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASS", ""),
			Cluster:            getEnv("DB_CLUSTER", ""),
			AppName:            getEnv("DB_APP_NAME", "liminal-backend"),
			Name:               getEnv("DB_NAME", "liminalDB"),
			UsersCollection:    getEnv("DB_USERS_COLLECTION", "usersCollection"),
			ProjectsCollection: getEnv("DB_PROJECTS_COLLECTION", "projectsCollection"),
			Timeout:            getEnvAsDuration("DB_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			AccessTokenSecret: getEnv("ACCESS_TOKEN", ""),
			TokenTTL:          getEnvAsDuration("ACCESS_TOKEN_TTL", time.Hour),
			TokenHeader:       getEnv("TOKEN_HEADER", "Authorization"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			RoleCacheTTL: getEnvAsDuration("ROLE_CACHE_TTL", 30*time.Second),
		},
		Media: MediaConfig{
			Provider:       strings.ToLower(getEnv("MEDIA_PROVIDER", MediaProviderCloudinary)),
			MaxUploadBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			Cloudinary: CloudinaryConfig{
				CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
				APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
				APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			},
			S3: S3Config{
				Bucket:        getEnv("S3_BUCKET", ""),
				Region:        getEnv("S3_REGION", "us-east-1"),
				PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
			},
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	for _, p := range c.Server.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}

	if c.Auth.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	if c.Database.MongoURI() == "" {
		return fmt.Errorf("MONGODB_URI or DB_USER/DB_PASS/DB_CLUSTER is required")
	}

	switch c.Media.Provider {
	case MediaProviderCloudinary:
		cl := c.Media.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		}
	case MediaProviderS3:
		if c.Media.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
	default:
		return fmt.Errorf("unknown MEDIA_PROVIDER %q", c.Media.Provider)
	}

	return nil
}

// MongoURI returns MONGODB_URI when set, otherwise an Atlas SRV URI built
// from the credential parts.
func (d DatabaseConfig) MongoURI() string {
	if d.URI != "" {
		return d.URI
	}
	if d.User == "" || d.Password == "" || d.Cluster == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Cluster, url.QueryEscape(d.AppName))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("invalid number, using default")
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}

	return value
}

func validProxy(p string) bool {
	if net.ParseIP(p) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(p)
	return err == nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
