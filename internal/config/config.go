package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// BonusConfig holds the scoring inputs: where the project archive and the
// complexity-override workbook live, who is excluded from the engineer list,
// and the tunables of the scoring rules.
type BonusConfig struct {
	ArchivePath        string
	OverridesPath      string
	PDFFontPath        string
	ExcludedEngineers  []string
	DaysPerPoint       int
	OverrunCoefficient float64
	CorrectionFactor   float64
}

type ScheduleConfig struct {
	CronSpec string
	Timezone string
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Bonus       BonusConfig
	Schedule    ScheduleConfig
	Telegram    TelegramConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Bonus: BonusConfig{
			ArchivePath:        v.GetString("BONUS_ARCHIVE_PATH"),
			OverridesPath:      v.GetString("BONUS_OVERRIDES_PATH"),
			PDFFontPath:        v.GetString("BONUS_PDF_FONT_PATH"),
			ExcludedEngineers:  parseList(v.GetString("BONUS_EXCLUDED_ENGINEERS")),
			DaysPerPoint:       v.GetInt("BONUS_DAYS_PER_POINT"),
			OverrunCoefficient: v.GetFloat64("BONUS_OVERRUN_COEFFICIENT"),
			CorrectionFactor:   v.GetFloat64("BONUS_CORRECTION_FACTOR"),
		},
		Schedule: ScheduleConfig{
			CronSpec: v.GetString("SCHEDULE_CRON"),
			Timezone: v.GetString("SCHEDULE_TIMEZONE"),
		},
		Telegram: TelegramConfig{
			Token:  v.GetString("TELEGRAM_TOKEN"),
			ChatID: v.GetInt64("TELEGRAM_CHAT_ID"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Bonus.DaysPerPoint == 0 {
		cfg.Bonus.DaysPerPoint = 5
	}
	if cfg.Bonus.OverrunCoefficient == 0 {
		cfg.Bonus.OverrunCoefficient = 0.9
	}
	if cfg.Bonus.CorrectionFactor == 0 {
		cfg.Bonus.CorrectionFactor = 0.3
	}
	if cfg.Schedule.CronSpec == "" {
		cfg.Schedule.CronSpec = "0 10 * * *"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Europe/Moscow"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Bonus.ArchivePath == "" {
		return fmt.Errorf("BONUS_ARCHIVE_PATH is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
