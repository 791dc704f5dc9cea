package config

import (
	"github.com/fox-one/pkg/config"
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("LEVER")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	cfg.Risk = cfg.Risk.WithDefaults()
	return nil
}
