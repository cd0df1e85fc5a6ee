package main

import "time"

type Config struct {
	Host        string `env:"HOST,default=localhost"`
	Port        int    `env:"PORT,default=8080"`
	DatabaseURL string `env:"DATABASE_URL,required=true"`
	LogLevel    string `env:"LOG_LEVEL,default=INFO"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	JWTIssuer         string        `env:"JWT_ISSUER,default=taskhub"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=168h"`

	AllowedOrigin        string        `env:"CORS_ORIGIN,default=*"`
	EventBufferSize      int           `env:"EVENT_BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
