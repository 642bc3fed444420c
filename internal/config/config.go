package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys, shared by flags, env (EVDASH_ prefix) and config files
const (
	KeyPort             = "port"
	KeyDataPath         = "data_path"
	KeyGinMode          = "gin_mode"
	KeyExportRateLimit  = "export_rate_limit"
	KeyExportRateWindow = "export_rate_window"
	KeyConfigFile       = "config"

	EnvPrefix = "EVDASH"
)

// Config 应用配置
type Config struct {
	Port             string
	DataPath         string
	GinMode          string
	ExportRateLimit  int
	ExportRateWindow time.Duration
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, ":8080")
	v.SetDefault(KeyDataPath, "Electric_Vehicle_Population_Data.csv")
	v.SetDefault(KeyGinMode, "release")
	v.SetDefault(KeyExportRateLimit, 30)
	v.SetDefault(KeyExportRateWindow, time.Minute)
}

// New returns a viper instance with defaults, .env values and EVDASH_* env binding
func New() *viper.Viper {
	// .env is optional; variables already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 加载配置
func Load(v *viper.Viper) (*Config, error) {
	// an explicit config file is merged before any key is resolved
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:             v.GetString(KeyPort),
		DataPath:         v.GetString(KeyDataPath),
		GinMode:          v.GetString(KeyGinMode),
		ExportRateLimit:  v.GetInt(KeyExportRateLimit),
		ExportRateWindow: v.GetDuration(KeyExportRateWindow),
	}
	if cfg.Port != "" && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.DataPath == "" {
		return nil, errors.New("data path is empty")
	}
	return cfg, nil
}
