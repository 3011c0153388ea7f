package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultRemoteURL  = "https://jsonplaceholder.typicode.com/users"
	defaultStorageKey = "customEmployees"
	defaultSQLitePath = "directory.db"
	defaultLogLevel   = "info"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Remote   RemoteConfig   `yaml:"remote"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// RemoteConfig はリモート名簿 API に関する設定です。Timeout が 0 の場合はタイムアウトを設けません。
type RemoteConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// StorageConfig はローカル名簿の保存先に関する設定です。
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	Key        string `yaml:"key"`
	SQLitePath string `yaml:"sqlite_path"`
}

// LogConfig はロガーに関する設定です。
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	return Parse(b)
}

// Parse は YAML を解釈し、既定値の補完と検証を行います。
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PathFromEnv は CONFIG_PATH 環境変数、なければ既定のパスを返します。
func PathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}

func (c *Config) validateAndNormalize() error {
	if err := c.Remote.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Storage.validateAndNormalize(); err != nil {
		return err
	}

	if c.Storage.Driver == DriverPostgres {
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}

	return nil
}

// ValidateServer はサーバー起動時にのみ必要な項目を検証します。
func (c *Config) ValidateServer() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	return nil
}

func (r *RemoteConfig) validateAndNormalize() error {
	if r.URL == "" {
		r.URL = defaultRemoteURL
	}
	u, err := url.Parse(r.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: remote.url must be an absolute URL")
	}

	timeout, err := parseDurationAllowEmpty(r.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: remote.timeout: %w", err)
	}
	if timeout < 0 {
		return fmt.Errorf("config: remote.timeout must not be negative")
	}
	r.Timeout = timeout

	return nil
}

func (s *StorageConfig) validateAndNormalize() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case "":
		s.Driver = DriverSQLite
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: storage.driver %q is not supported", s.Driver)
	}

	if s.Key == "" {
		s.Key = defaultStorageKey
	}
	if s.Driver == DriverSQLite && s.SQLitePath == "" {
		s.SQLitePath = defaultSQLitePath
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
