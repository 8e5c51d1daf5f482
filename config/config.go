package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "MENUCART_CONFIG_FILE"

type Storage struct {
	Driver string `mapstructure:"driver"` // memory | file | sqlite | postgres
	Path   string `mapstructure:"path"`   // file and sqlite drivers
	DSN    string `mapstructure:"dsn"`    // postgres driver
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type RateLimit struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	HTTPServerAddr string    `mapstructure:"http_server_addr"`
	MenuFile       string    `mapstructure:"menu_file"`
	Storage        Storage   `mapstructure:"storage"`
	Metrics        Metrics   `mapstructure:"metrics"`
	RateLimit      RateLimit `mapstructure:"rate_limit"`
}

// Load reads the optional config file named by --config or the
// MENUCART_CONFIG_FILE env var on top of built-in defaults.
func Load() Config {
	setDefaults()

	if path := configFilepath(); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			die(err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		die(err)
	}
	return cfg
}

func setDefaults() {
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.path", "menucart.db.json")
	viper.SetDefault("rate_limit.limit", 60)
	viper.SetDefault("rate_limit.window_seconds", 60)
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])

	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}
