// Package config provides configuration management for the walk-forward
// validation service.
package config

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	WalkForward WalkForwardConfig `mapstructure:"walk_forward" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// BacktestConfig selects and configures the backtest adapter
type BacktestConfig struct {
	Adapter         string  `mapstructure:"adapter" validate:"required,oneof=local remote"`
	ServiceURL      string  `mapstructure:"service_url" validate:"omitempty,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CacheEnabled    bool    `mapstructure:"cache_enabled"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	CacheMaxSize    int     `mapstructure:"cache_max_size" validate:"omitempty,gt=0"`
}

// WalkForwardConfig represents walk-forward run configuration
type WalkForwardConfig struct {
	Symbols              []string `mapstructure:"symbols" validate:"required,min=1"`
	StartDate            string   `mapstructure:"start_date" validate:"required,dateformat"`
	EndDate              string   `mapstructure:"end_date" validate:"required,dateformat"`
	TrainMonths          int      `mapstructure:"train_months" validate:"required,gt=0"`
	ValidateMonths       int      `mapstructure:"validate_months" validate:"required,gt=0"`
	DegradationThreshold float64  `mapstructure:"degradation_threshold" validate:"omitempty,gt=0"`
	PrimaryMetric        string   `mapstructure:"primary_metric" validate:"omitempty,metric"`
	Concurrency          int      `mapstructure:"concurrency" validate:"gte=0"`
	WindowTimeoutSeconds int      `mapstructure:"window_timeout_seconds" validate:"gte=0"`
	StrategyConfig       string   `mapstructure:"strategy_config"`
	OutputPath           string   `mapstructure:"output_path"`
}

// SchedulerConfig represents periodic revalidation configuration
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression" validate:"required_if=Enabled true"`
}
