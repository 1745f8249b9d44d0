// internal/config/model.go
package config

import "time"

type Config struct {
    HTTP      HTTP      `koanf:"http"`
    Database  Database  `koanf:"database"`
    Storage   Storage   `koanf:"storage"`
    Generator Generator `koanf:"generator"`
    Events    Events    `koanf:"events"`
    Log       Log       `koanf:"log"`
}

type HTTP struct {
    ListenAddr      string        `koanf:"listen_addr" validate:"required,hostname_port"`
    AllowedOrigins  []string      `koanf:"allowed_origins"`
    ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type Database struct {
    Host            string        `koanf:"host"`
    Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
    User            string        `koanf:"user"`
    Password        string        `koanf:"password"`
    Name            string        `koanf:"name"`
    SSLMode         string        `koanf:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
    MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
    MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
    ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
    ConnectAttempts uint          `koanf:"connect_attempts"`
}

// Storage picks the repository backend.
type Storage struct {
    Backend  string `koanf:"backend" validate:"oneof=postgres memory file"`
    FilePath string `koanf:"file_path" validate:"required_if=Backend file"`
}

type Generator struct {
    Provider    string        `koanf:"provider" validate:"oneof=openai mock"`
    Model       string        `koanf:"model" validate:"required"`
    APIKey      string        `koanf:"api_key"`
    BaseURL     string        `koanf:"base_url" validate:"omitempty,url"`
    Temperature float64       `koanf:"temperature" validate:"gte=0,lte=2"`
    MaxTokens   int64         `koanf:"max_tokens" validate:"gt=0"`
    Timeout     time.Duration `koanf:"timeout"`
}

type Events struct {
    Backend    string `koanf:"backend" validate:"oneof=none memory amqp"`
    URL        string `koanf:"url" validate:"required_if=Backend amqp"`
    Exchange   string `koanf:"exchange"`
    Queue      string `koanf:"queue"`
    RoutingKey string `koanf:"routing_key"`
}

type Log struct {
    Level   string `koanf:"level" validate:"oneof=debug info warn error"`
    Dir     string `koanf:"dir"`
    Console bool   `koanf:"console"`
}
