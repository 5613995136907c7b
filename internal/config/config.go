package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTLSecs  int    `yaml:"ttl_seconds"`
	} `yaml:"redis"`
	Storage struct {
		Kind      string `yaml:"kind"` // "local" or "s3"
		LocalDir  string `yaml:"local_dir"`
		BaseURL   string `yaml:"base_url"`
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		Bucket    string `yaml:"bucket"`
		Folder    string `yaml:"folder"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"storage"`
	AntiSpam struct {
		MinTitleLength       int `yaml:"min_title_length"`
		MinDescriptionLength int `yaml:"min_description_length"`
		MaxAdsPerHour        int `yaml:"max_ads_per_hour"`
	} `yaml:"antispam"`
	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// LoadConfig reads the YAML file named by CONFIG_PATH, then lets the
// environment override every secret-bearing field so credentials stay
// out of the file.
func LoadConfig() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":4001"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Storage.Kind == "" {
		cfg.Storage.Kind = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Redis.TTLSecs <= 0 {
		cfg.Redis.TTLSecs = 300
	}
	if cfg.AntiSpam.MinTitleLength <= 0 {
		cfg.AntiSpam.MinTitleLength = 5
	}
	if cfg.AntiSpam.MinDescriptionLength <= 0 {
		cfg.AntiSpam.MinDescriptionLength = 10
	}
	if cfg.AntiSpam.MaxAdsPerHour <= 0 {
		cfg.AntiSpam.MaxAdsPerHour = 5
	}
}
