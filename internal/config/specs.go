package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int `envconfig:"port" default:"8080"`
	GRPCPort int `envconfig:"grpc_port" default:"50051"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	RedisAddr     string        `envconfig:"redis_addr" default:"localhost:6379"`
	RedisPassword string        `envconfig:"redis_password"`
	RedisDB       int           `envconfig:"redis_db" default:"0"`
	CacheTTL      time.Duration `envconfig:"cache_ttl" default:"5m"`

	// JWTSecret enables shared-secret session token verification. When
	// JWKSURL or JWTIssuer is set instead, tokens are verified against the
	// issuer's key set.
	JWTSecret    string `envconfig:"jwt_secret"`
	JWTAlgorithm string `envconfig:"jwt_algorithm" default:"HS256"`
	JWTIssuer    string `envconfig:"jwt_issuer"`
	JWKSURL      string `envconfig:"jwks_url"`

	AuthenticationEnabled bool `envconfig:"authentication_enabled" default:"true"`
}
