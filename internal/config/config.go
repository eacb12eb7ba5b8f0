package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/covid-dashboard/internal/common"
)

type AppConfig struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	// DatasetURL is where the OWID CSV is downloaded from.
	DatasetURL string `envconfig:"DATASET_URL" default:"https://covid.ourworldindata.org/data/owid-covid-data.csv" validate:"required_without=DatasetFile,omitempty,url"`
	// DatasetFile, when set, replaces the download with a local CSV.
	DatasetFile string `envconfig:"DATASET_FILE"`

	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"2m" validate:"gt=0"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"6h" validate:"gte=1m"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// StoreMaxHistory bounds the kept load records (0 = unlimited).
	StoreMaxHistory int `envconfig:"STORE_MAX_HISTORY" default:"20" validate:"gte=0"`
	SnapshotTopN    int `envconfig:"SNAPSHOT_TOP_N" default:"10" validate:"gte=1,lte=500"`

	DefaultCountries  []string `envconfig:"DEFAULT_COUNTRIES" default:"United States,India,Brazil,Russia,United Kingdom"`
	DefaultContinents []string `envconfig:"DEFAULT_CONTINENTS" default:"Asia,Europe,Africa,North America,South America,Oceania"`
}

var validate = validator.New()

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv processes the current environment without touching .env files.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.DefaultCountries = common.CleanList(cfg.DefaultCountries)
	cfg.DefaultContinents = common.CleanList(cfg.DefaultContinents)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
