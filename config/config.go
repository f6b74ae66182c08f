package config

import (
	"github.com/funnelhub/domainstack/internal/cache"
	"github.com/funnelhub/domainstack/internal/logger"
	"github.com/funnelhub/domainstack/internal/tracing"
)

type Config struct {
	AppConfig        *AppConfig
	Logger           *logger.Config
	Tracing          *tracing.JaegerConfig
	DatabaseConfig   *DatabaseConfig
	RedisConfig      *cache.RedisConfig
	CloudflareConfig *CloudflareConfig
}

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12555"`
	APIKey  string `env:"API_KEY,required"`
}

type DatabaseConfig struct {
	Host            string `env:"DOMAINSTACK_POSTGRES_HOST,required"`
	Port            string `env:"DOMAINSTACK_POSTGRES_PORT,required"`
	User            string `env:"DOMAINSTACK_POSTGRES_USER,required"`
	DBName          string `env:"DOMAINSTACK_POSTGRES_DB_NAME,required"`
	Password        string `env:"DOMAINSTACK_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"DOMAINSTACK_POSTGRES_DB_MAX_CONN" envDefault:"50"`
	MaxIdleConn     int    `env:"DOMAINSTACK_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"DOMAINSTACK_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"DOMAINSTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"DOMAINSTACK_POSTGRES_SSL_MODE" envDefault:"require"`
}

type CloudflareConfig struct {
	Url      string `env:"CLOUDFLARE_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	ApiToken string `env:"CLOUDFLARE_API_TOKEN"`
	ZoneID   string `env:"CLOUDFLARE_ZONE_ID"`
	// SaaSTarget is the edge CNAME customers point their hostnames at.
	SaaSTarget string `env:"CLOUDFLARE_SAAS_TARGET"`
	// PlatformMainDomain is the zone platform subdomains are created under.
	PlatformMainDomain string `env:"PLATFORM_MAIN_DOMAIN"`
}
