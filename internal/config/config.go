package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	ListenAddr string    `yaml:"listen_addr"`
	TLS        TLSConfig `yaml:"tls"`
}

type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type DashboardConfig struct {
	RecentCampaigns int              `yaml:"recent_campaigns"`
	Compliance      ComplianceConfig `yaml:"compliance"`
}

// Compliance provider modes
const (
	ComplianceStatic = "static"
	ComplianceDNS    = "dns"
)

type ComplianceConfig struct {
	Mode         string `yaml:"mode"`
	Domain       string `yaml:"domain"`
	DKIMSelector string `yaml:"dkim_selector"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "/var/lib/mailboard/app.db"
	}
	if cfg.Dashboard.RecentCampaigns == 0 {
		cfg.Dashboard.RecentCampaigns = 10
	}
	if cfg.Dashboard.Compliance.Mode == "" {
		cfg.Dashboard.Compliance.Mode = ComplianceStatic
	}
	if cfg.Dashboard.Compliance.DKIMSelector == "" {
		cfg.Dashboard.Compliance.DKIMSelector = "default"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validate(cfg *Config) error {
	switch cfg.Dashboard.Compliance.Mode {
	case ComplianceStatic:
	case ComplianceDNS:
		if cfg.Dashboard.Compliance.Domain == "" {
			return fmt.Errorf("dashboard.compliance.domain is required when mode is dns")
		}
	default:
		return fmt.Errorf("dashboard.compliance.mode must be %q or %q", ComplianceStatic, ComplianceDNS)
	}
	if cfg.Server.TLS.Enabled {
		if cfg.Server.TLS.CertFile == "" || cfg.Server.TLS.KeyFile == "" {
			return fmt.Errorf("server.tls.cert_file and key_file are required when TLS is enabled")
		}
	}
	return nil
}
