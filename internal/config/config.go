package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/validator"
)

type PostgresConfig struct {
	User               string        `validate:"required"`
	Password           string        `validate:"required"`
	Host               string        `validate:"required"`
	Database           string        `validate:"required"`
	MaxIdleConnections int           `validate:"required" mapstructure:"max_idle_connections"`
	MaxOpenConnections int           `validate:"required" mapstructure:"max_open_connections"`
	ConnectionTTL      time.Duration `validate:"required" mapstructure:"connection_ttl"`
	Port               int16         `validate:"required"`
}

type SlogConfig struct {
	Level int `mapstructure:"level"`
}

type GormLogConfig struct {
	Level        int  `mapstructure:"level"`
	TraceQueries bool `mapstructure:"trace_queries"`
}

type LoggingConfig struct {
	Gorm    GormLogConfig `mapstructure:"gorm"`
	App     SlogConfig    `mapstructure:"app"`
	UseOTLP bool          `mapstructure:"use_otlp"`
}

// AdminConfig is the single admin identity. The password is configured as an
// argon2id hash, never plaintext; use cmd/adminhash to generate one.
type AdminConfig struct {
	Username     string `mapstructure:"username"      validate:"required"`
	PasswordHash string `mapstructure:"password_hash" validate:"required"`
}

type SessionConfig struct {
	SigningKey    string `mapstructure:"signing_key" validate:"required,min=32"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
}

type RateLimitWindow struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	// "memory" for single-instance deployments, "redis" to share counters
	// across instances.
	Store      string          `mapstructure:"store"       validate:"oneof=memory redis"`
	RedisHost  string          `mapstructure:"redis_host"`
	FailOpen   bool            `mapstructure:"fail_open"`
	AdminLogin RateLimitWindow `mapstructure:"admin_login"`
	Check      RateLimitWindow `mapstructure:"check"`
	Submit     RateLimitWindow `mapstructure:"submit"`
}

type S3ArchiveConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	SSLEnabled      bool   `mapstructure:"ssl_enabled"`
}

// See recruitmentapi.yaml for an example config
type Config struct {
	Postgres             *PostgresConfig  `mapstructure:"postgres"       validate:"required"`
	Logging              *LoggingConfig   `mapstructure:"logging"`
	Admin                *AdminConfig     `mapstructure:"admin"          validate:"required"`
	Session              *SessionConfig   `mapstructure:"session"        validate:"required"`
	RateLimit            *RateLimitConfig `mapstructure:"ratelimit"`
	S3Archive            *S3ArchiveConfig `mapstructure:"s3_archive"`
	ListenAddress        string           `mapstructure:"listen_address" validate:"required"`
	GracefulShutdownSecs int64            `mapstructure:"graceful_shutdown_secs"`
}

const (
	AdminPasswordHash          string = "admin.password_hash"
	AdminUsername              string = "admin.username"
	AppLogLevel                string = "logging.app.level"
	EnvPrefix                  string = "recruitmentapi"
	GormLogLevel               string = "logging.gorm.level"
	GormTraceQueries           string = "logging.gorm.trace_queries"
	GracefulShutdownSecs       string = "graceful_shutdown_secs"
	ListenAddress              string = "listen_address"
	PostgresDatabase           string = "postgres.database"
	PostgresHost               string = "postgres.host"
	PostgresPassword           string = "postgres.password"
	PostgresPort               string = "postgres.port"
	PostgresUser               string = "postgres.user"
	PostgresMaxIdleConnections string = "postgres.max_idle_connections"
	PostgresMaxOpenConnections string = "postgres.max_open_connections"
	PostgresConnectionTTL      string = "postgres.connection_ttl"
	RateLimitAdminLoginMax     string = "ratelimit.admin_login.max_requests"
	RateLimitAdminLoginWindow  string = "ratelimit.admin_login.window"
	RateLimitCheckMax          string = "ratelimit.check.max_requests"
	RateLimitCheckWindow       string = "ratelimit.check.window"
	RateLimitFailOpen          string = "ratelimit.fail_open"
	RateLimitStore             string = "ratelimit.store"
	RateLimitSubmitMax         string = "ratelimit.submit.max_requests"
	RateLimitSubmitWindow      string = "ratelimit.submit.window"
	RedisHost                  string = "ratelimit.redis_host"
	S3AccessKeyID              string = "s3_archive.access_key_id"
	S3ArchiveEnabled           string = "s3_archive.enabled"
	S3SSLEnabled               string = "s3_archive.ssl_enabled"
	S3SecretAccessKey          string = "s3_archive.secret_access_key" // #nosec
	SessionSigningKey          string = "session.signing_key"
	SessionSecureCookies       string = "session.secure_cookies"
	UseOTLP                    string = "logging.use_otlp"
)

var configReady = false
var config Config

func GetConfig() (*Config, error) {
	if configReady {
		logger.Logger.Debug("returning already-loaded config")
		return &config, nil
	}
	logger.Logger.Info("loading config")

	v := viper.New()

	v.SetConfigName("recruitmentapi")

	v.AddConfigPath("/etc/recruitmentapi/")
	v.AddConfigPath(".")

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AutomaticEnv()

	// workaround for https://github.com/spf13/viper/issues/761
	// bind env vars explicitly so they unmarshal into the nested struct
	for _, key := range []string{
		PostgresPassword,
		AdminPasswordHash,
		AdminUsername,
		SessionSigningKey,
		S3AccessKeyID,
		S3SecretAccessKey,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault(ListenAddress, "[::]:1323")
	v.SetDefault(PostgresHost, "localhost")
	v.SetDefault(PostgresPort, 5432)
	v.SetDefault(PostgresMaxIdleConnections, 2)
	v.SetDefault(PostgresMaxOpenConnections, 10)
	v.SetDefault(PostgresConnectionTTL, 10*time.Minute)
	v.SetDefault(GormLogLevel, int(slog.LevelDebug))
	v.SetDefault(GormTraceQueries, false)
	v.SetDefault(AppLogLevel, int(slog.LevelDebug))

	v.SetDefault(RateLimitStore, "memory")
	v.SetDefault(RedisHost, "localhost")
	v.SetDefault(RateLimitFailOpen, true)
	v.SetDefault(RateLimitAdminLoginMax, 5)
	v.SetDefault(RateLimitAdminLoginWindow, 15*time.Minute)
	v.SetDefault(RateLimitCheckMax, 10)
	v.SetDefault(RateLimitCheckWindow, time.Minute)
	v.SetDefault(RateLimitSubmitMax, 3)
	v.SetDefault(RateLimitSubmitWindow, 5*time.Minute)

	v.SetDefault(S3ArchiveEnabled, false)
	v.SetDefault(S3SSLEnabled, true)

	v.SetDefault(SessionSecureCookies, true)

	v.SetDefault(UseOTLP, false)

	v.SetDefault(GracefulShutdownSecs, 30)

	err := v.ReadInConfig()
	if err != nil {
		// ignore config file not found to allow pure env config
		if _, ok := err.(*viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	valid := validator.Create()
	err = valid.Validate(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	configReady = true
	return &config, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s",
		url.QueryEscape(c.Postgres.User),
		url.QueryEscape(c.Postgres.Password),
		c.Postgres.Host, c.Postgres.Port,
		url.QueryEscape(c.Postgres.Database),
	)
}
