package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"multicleaner/internal/core/domain/model/policy"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost        string `env:"DB_HOST"         envDefault:"localhost"`
	DBPort        string `env:"DB_PORT"         envDefault:"5432"`
	DBUser        string `env:"DB_USER"         envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME"         envDefault:"multicleaner"`
	DBSslMode     string `env:"DB_SSLMODE"      envDefault:"disable"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	OfferExpirationHours       int     `env:"OFFER_EXPIRATION_HOURS"        envDefault:"48"`
	JoinRequestExpirationHours int     `env:"JOIN_REQUEST_EXPIRATION_HOURS" envDefault:"48"`
	EdgeCaseDecisionHours      int     `env:"EDGE_CASE_DECISION_HOURS"      envDefault:"24"`
	ExtraWorkOfferHours        int     `env:"EXTRA_WORK_OFFER_HOURS"        envDefault:"12"`
	LargeHomeBedsThreshold     int     `env:"LARGE_HOME_BEDS_THRESHOLD"     envDefault:"3"`
	LargeHomeBathsThreshold    float64 `env:"LARGE_HOME_BATHS_THRESHOLD"    envDefault:"3"`
	UrgentFillDays             int     `env:"URGENT_FILL_DAYS"              envDefault:"3"`
	FinalWarningHours          int     `env:"FINAL_WARNING_HOURS"           envDefault:"24"`
	MaxSoloMinutes             int     `env:"MAX_SOLO_MINUTES"              envDefault:"240"`
	PlatformFeePercent         int     `env:"PLATFORM_FEE_PERCENT"          envDefault:"10"`

	SweepSchedule    string `env:"SWEEP_SCHEDULE"      envDefault:"0 * * * * *"`
	RunSweepsOnStart bool   `env:"RUN_SWEEPS_ON_START" envDefault:"true"`

	SMTP         SMTPConfig    `envPrefix:"SMTP_"`
	PushEndpoint string        `env:"PUSH_ENDPOINT"`
	PushTimeout  time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`

	MetricsNamespace string    `env:"METRICS_NAMESPACE" envDefault:"multicleaner"`
	Log              LogConfig `envPrefix:"LOG_"`
}

// SMTPConfig enables the email channel when Host is set.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"      envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	FromName string `env:"FROM_NAME" envDefault:"Multi-Cleaner"`
	From     string `env:"FROM"      envDefault:"no-reply@localhost"`
}

// LogConfig writes to stdout and, when File is set, to a rotated file as well.
type LogConfig struct {
	Level      string `env:"LEVEL"        envDefault:"info"`
	Format     string `env:"FORMAT"       envDefault:"json"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"  envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS"  envDefault:"5"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"28"`
}

// LoadConfig reads the dotenv files that exist, then the environment.
// Variables already set in the environment win over the files.
func LoadConfig(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err = cfg.Settings().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Settings converts the configured windows and thresholds for the engine.
func (c Config) Settings() policy.Settings {
	return policy.Settings{
		OfferExpiration:         time.Duration(c.OfferExpirationHours) * time.Hour,
		JoinRequestExpiration:   time.Duration(c.JoinRequestExpirationHours) * time.Hour,
		EdgeCaseDecisionWindow:  time.Duration(c.EdgeCaseDecisionHours) * time.Hour,
		ExtraWorkOfferWindow:    time.Duration(c.ExtraWorkOfferHours) * time.Hour,
		LargeHomeBedsThreshold:  c.LargeHomeBedsThreshold,
		LargeHomeBathsThreshold: c.LargeHomeBathsThreshold,
		UrgentFillHorizon:       time.Duration(c.UrgentFillDays) * 24 * time.Hour,
		FinalWarningHorizon:     time.Duration(c.FinalWarningHours) * time.Hour,
		MaxSoloMinutes:          c.MaxSoloMinutes,
	}
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
