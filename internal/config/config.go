package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Database        DatabaseConfig        `toml:"database"`
	Metrics         MetricsConfig         `toml:"metrics"`
	ConsultationAPI ConsultationAPIConfig `toml:"consultation_api"`
	Wizard          WizardConfig          `toml:"wizard"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"` // пустое значение = stdout
	Level string `toml:"level"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ConsultationAPIConfig настройки клиента внешнего consultation API
// APIToken передаётся в клиент явным параметром, а не читается из окружения внутри него
type ConsultationAPIConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"` // секунды
	APIToken string `toml:"api_token"`
}

// WizardConfig настройки жизненного цикла черновиков анкеты
type WizardConfig struct {
	DraftTTLMinutes   int    `toml:"draft_ttl_minutes"`
	SummaryTTLMinutes int    `toml:"summary_ttl_minutes"`
	PurgeInterval     int    `toml:"purge_interval_minutes"`
	PublicBaseURL     string `toml:"public_base_url"` // protocol + host витрины
	SuccessPath       string `toml:"success_path"`    // страница успеха после оплаты
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "acs-consultation-service"
	}
	if cfg.ConsultationAPI.Timeout == 0 {
		cfg.ConsultationAPI.Timeout = 10
	}
	if cfg.Wizard.DraftTTLMinutes == 0 {
		cfg.Wizard.DraftTTLMinutes = 120
	}
	if cfg.Wizard.SummaryTTLMinutes == 0 {
		cfg.Wizard.SummaryTTLMinutes = 30
	}
	if cfg.Wizard.PurgeInterval == 0 {
		cfg.Wizard.PurgeInterval = 15
	}
	if cfg.Wizard.SuccessPath == "" {
		cfg.Wizard.SuccessPath = "/consultation/success"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.ConsultationAPI.URL == "" {
		return fmt.Errorf("config: consultation_api.url is required")
	}
	if cfg.Wizard.PublicBaseURL == "" {
		return fmt.Errorf("config: wizard.public_base_url is required")
	}
	return nil
}
