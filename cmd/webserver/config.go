package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"studyquiz"
)

type config struct {
	Port          string           `mapstructure:"port"`
	SessionSecret string           `mapstructure:"session_secret"`
	TemplateDir   string           `mapstructure:"template_dir"`
	Verbose       bool             `mapstructure:"verbose"`
	Engine        studyquiz.Config `mapstructure:"engine"`
}

func defaultConfig() config {
	return config{
		Port:          "8180",
		SessionSecret: "dev-secret",
		TemplateDir:   "templates",
		Engine: studyquiz.Config{
			Strategy: studyquiz.StrategyLocal,
		},
	}
}

// loadConfig merges defaults, an optional config file and environment
// variables (WEBSERVER_PORT, WEBSERVER_ENGINE_API_KEY, ...) into the
// config struct.
func loadConfig(file string) (config, error) {
	cfg := defaultConfig()

	v := viper.New()
	m := make(map[string]any)
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return cfg, fmt.Errorf("mapstructure: %v", err)
	}
	if err := v.MergeConfigMap(m); err != nil {
		return cfg, fmt.Errorf("merge config map: %v", err)
	}

	v.SetEnvPrefix("webserver")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return cfg, fmt.Errorf("read config from file %s: %v", file, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %v", err)
	}

	// Legacy environment names still win when set.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Engine.APIKey == "" {
		cfg.Engine.APIKey = key
	}
	return cfg, nil
}
