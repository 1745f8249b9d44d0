/*
Context
--------
`Load(path)` builds one `Config` from four layers (highest precedence last):

  1. Optional `.env` in the working directory.
  2. The YAML file at `path` (skipped when the file does not exist).
  3. Deployment variables the service has always honoured:
     `OPENAI_API_KEY`, `PORT` and `POSTGRES_*`.  They override the file.
  4. Environment variables prefixed `CONTENTGEN_`, where `__` maps to "."
     (e.g. `CONTENTGEN_GENERATOR__API_KEY → generator.api_key`).

Defaults are applied after merging and the result is validated before it
is handed back.  A bad config aborts startup.
*/
package config

import (
    "errors"
    "fmt"
    "io/fs"
    "net"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/knadh/koanf/parsers/yaml"
    "github.com/knadh/koanf/providers/env"
    "github.com/knadh/koanf/providers/file"
    koanf "github.com/knadh/koanf/v2"
)

const EnvPrefix = "CONTENTGEN_"

func Load(path string) (*Config, error) {
    _ = godotenv.Load()

    k := koanf.New(".")

    if path != "" {
        if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
            if !errors.Is(err, fs.ErrNotExist) {
                return nil, fmt.Errorf("load config file %s: %w", path, err)
            }
        }
    }

    if err := k.Load(env.ProviderWithValue("", ".", legacyEnv), nil); err != nil {
        return nil, fmt.Errorf("load deployment env: %w", err)
    }

    if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
        return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
    }), nil); err != nil {
        return nil, fmt.Errorf("load env overrides: %w", err)
    }

    var cfg Config
    if err := k.Unmarshal("", &cfg); err != nil {
        return nil, fmt.Errorf("unmarshal config: %w", err)
    }

    cfg.setDefaults()

    if err := validateStruct(&cfg); err != nil {
        return nil, fmt.Errorf("invalid config: %w", err)
    }
    return &cfg, nil
}

// legacyKeys maps deployment variable names onto config keys.
var legacyKeys = map[string]string{
    "OPENAI_API_KEY":    "generator.api_key",
    "POSTGRES_USER":     "database.user",
    "POSTGRES_PASSWORD": "database.password",
    "POSTGRES_DB":       "database.name",
    "POSTGRES_HOST":     "database.host",
    "POSTGRES_PORT":     "database.port",
    "PORT":              "http.listen_addr",
}

// legacyEnv keeps only the known deployment variables; empty ones are
// skipped so they cannot blank out file values.
func legacyEnv(name, value string) (string, any) {
    key, ok := legacyKeys[name]
    if !ok || value == "" {
        return "", nil
    }
    if name == "PORT" {
        return key, ":" + value
    }
    return key, value
}

func (c *Config) setDefaults() {
    if c.HTTP.ListenAddr == "" {
        c.HTTP.ListenAddr = ":8000"
    }
    if len(c.HTTP.AllowedOrigins) == 0 {
        c.HTTP.AllowedOrigins = []string{"*"}
    }
    if c.HTTP.ShutdownTimeout == 0 {
        c.HTTP.ShutdownTimeout = 30 * time.Second
    }

    if c.Database.Host == "" {
        c.Database.Host = "localhost"
    }
    if c.Database.Port == 0 {
        c.Database.Port = 5432
    }
    if c.Database.User == "" {
        c.Database.User = "postgres"
    }
    if c.Database.Name == "" {
        c.Database.Name = "editorial_content"
    }
    if c.Database.SSLMode == "" {
        c.Database.SSLMode = "disable"
    }
    if c.Database.MaxOpenConns == 0 {
        c.Database.MaxOpenConns = 15
    }
    if c.Database.MaxIdleConns == 0 {
        c.Database.MaxIdleConns = 5
    }
    if c.Database.ConnMaxLifetime == 0 {
        c.Database.ConnMaxLifetime = 30 * time.Minute
    }
    if c.Database.ConnectAttempts == 0 {
        c.Database.ConnectAttempts = 10
    }

    if c.Storage.Backend == "" {
        c.Storage.Backend = "postgres"
    }

    if c.Generator.Provider == "" {
        c.Generator.Provider = "openai"
    }
    if c.Generator.Model == "" {
        c.Generator.Model = "gpt-4o-mini"
    }
    if c.Generator.Temperature == 0 {
        c.Generator.Temperature = 0.7
    }
    if c.Generator.MaxTokens == 0 {
        c.Generator.MaxTokens = 500
    }
    if c.Generator.Timeout == 0 {
        c.Generator.Timeout = 60 * time.Second
    }

    if c.Events.Backend == "" {
        c.Events.Backend = "none"
    }
    if c.Events.Exchange == "" {
        c.Events.Exchange = "editorial"
    }
    if c.Events.Queue == "" {
        c.Events.Queue = "editorial.content.generated"
    }
    if c.Events.RoutingKey == "" {
        c.Events.RoutingKey = "content.generated"
    }

    if c.Log.Level == "" {
        c.Log.Level = "info"
    }
}

// DSN renders the lib/pq connection URL. Credentials are escaped.
func (d Database) DSN() string {
    u := url.URL{
        Scheme:   "postgres",
        User:     url.UserPassword(d.User, d.Password),
        Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
        Path:     "/" + d.Name,
        RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
    }
    return u.String()
}
