package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/pkg/types"
)

// EnvPrefix префикс переменных окружения, например PTM_DATABASE_HOST или PTM_SERVER_HTTP_PORT
const EnvPrefix = "PTM"

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverJSONFile = "jsonfile"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverlay возвращается, когда переменные окружения не удалось применить
	ErrEnvOverlay = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Logs     LogsConfig      `toml:"logs"`
	Database DatabaseConfig  `toml:"database"`
	Storage  StorageConfig   `toml:"storage"`
	Slots    SlotsConfig     `toml:"slots"`
	Admin    AdminConfig     `toml:"admin"`
	Metrics  MetricsConfig   `toml:"metrics"`
	Events   EventsConfig    `toml:"events"`
	Teachers []TeacherConfig `toml:"teachers" ignored:"true"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// DatabaseConfig хранилище бронирований
type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"`
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды

	// Путь к JSON документу для драйвера jsonfile; пусто - данные только в памяти
	JSONPath string `toml:"json_path" split_words:"true"`
}

// StorageConfig ограничение ожидания хранилища
type StorageConfig struct {
	Timeout int `toml:"timeout" split_words:"true"` // секунды
}

// SlotsConfig окно приёма
type SlotsConfig struct {
	WindowStart         string `toml:"window_start" split_words:"true"`
	WindowEnd           string `toml:"window_end" split_words:"true"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes" split_words:"true"`
	Weekday             string `toml:"weekday" split_words:"true"`
}

// AdminConfig учётная запись администратора
type AdminConfig struct {
	Username     string `toml:"username" split_words:"true"`
	PasswordHash string `toml:"password_hash" split_words:"true"` // bcrypt
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// EventsConfig публикация событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	AMQPURL  string `toml:"amqp_url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// TeacherConfig запись справочника учителей
type TeacherConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Room string `toml:"room"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Driver:          DriverJSONFile,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			JSONPath:        "data/bookings.json",
		},
		Storage: StorageConfig{
			Timeout: 5,
		},
		Slots: SlotsConfig{
			WindowStart:         domain.DefaultWindowStart,
			WindowEnd:           domain.DefaultWindowEnd,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			Weekday:             strings.ToLower(domain.DefaultWeekday.String()),
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "ptm-booking-service",
		},
		Events: EventsConfig{
			Exchange: "ptm.bookings",
		},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML файл (если путь задан),
// затем переменные окружения с префиксом PTM
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverlay, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Port <= 0 || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.port and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverJSONFile:
	default:
		return fmt.Errorf("%w: database.driver must be %q or %q, got %q",
			ErrInvalidConfig, DriverPostgres, DriverJSONFile, c.Database.Driver)
	}

	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("%w: storage.timeout must be positive", ErrInvalidConfig)
	}

	if _, err := c.Schedule(); err != nil {
		return err
	}

	if c.Events.Enabled && c.Events.AMQPURL == "" {
		return fmt.Errorf("%w: events.amqp_url is required when events are enabled", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	return nil
}

// Schedule собирает политику приёма из секции [slots]
func (c *Config) Schedule() (domain.Schedule, error) {
	start, err := types.NewTimeStringFromString(c.Slots.WindowStart)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: slots.window_start: %v", ErrInvalidConfig, err)
	}

	end, err := types.NewTimeStringFromString(c.Slots.WindowEnd)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: slots.window_end: %v", ErrInvalidConfig, err)
	}

	weekday, err := domain.ParseWeekday(c.Slots.Weekday)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: slots.weekday: %v", ErrInvalidConfig, err)
	}

	window := domain.SlotWindow{
		Start:           start,
		End:             end,
		DurationMinutes: c.Slots.SlotDurationMinutes,
	}
	if err := window.Validate(); err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: slots: %v", ErrInvalidConfig, err)
	}

	return domain.Schedule{Window: window, Weekday: weekday}, nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StoreTimeout ограничение ожидания хранилища
func (c *Config) StoreTimeout() time.Duration {
	return time.Duration(c.Storage.Timeout) * time.Second
}

// TeacherDirectory справочник учителей в доменных типах
func (c *Config) TeacherDirectory() []domain.Teacher {
	teachers := make([]domain.Teacher, 0, len(c.Teachers))
	for _, t := range c.Teachers {
		teachers = append(teachers, domain.Teacher{ID: t.ID, Name: t.Name, Room: t.Room})
	}
	return teachers
}

// AdminUser учётная запись администратора из конфигурации; false, если она не задана
func (c *Config) AdminUser() (domain.User, bool) {
	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		return domain.User{}, false
	}
	return domain.User{
		ID:           1,
		Username:     c.Admin.Username,
		PasswordHash: c.Admin.PasswordHash,
		Role:         domain.RoleAdmin,
	}, true
}
