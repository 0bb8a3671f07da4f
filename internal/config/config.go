package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const Version = "v1.0.0"

const (
	DefaultEndpointURL = "https://inngestabot.deno.dev"
	DefaultStorageKey  = "ai-sdk-history"
	DefaultDocsBaseURL = "https://www.inngest.com"
)

type Config struct {
	EndpointURL      string        `mapstructure:"endpoint_url"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	GeneratorBackend string        `mapstructure:"generator_backend"`
	HistoryBackend   string        `mapstructure:"history_backend"` // file, sqlite or memory
	HistoryPath      string        `mapstructure:"history_path"`
	StorageKey       string        `mapstructure:"storage_key"`
	SyntaxTheme      string        `mapstructure:"syntax_theme"`
	DocsBaseURL      string        `mapstructure:"docs_base_url"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFile          string        `mapstructure:"log_file"`
	WebPort          string        `mapstructure:"web_port"`
}

// DataDir is where history and logs live unless overridden.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gptflow")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint_url", DefaultEndpointURL)
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("generator_backend", "remote")
	v.SetDefault("history_backend", "file")
	v.SetDefault("history_path", filepath.Join(DataDir(), "history.json"))
	v.SetDefault("storage_key", DefaultStorageKey)
	v.SetDefault("syntax_theme", "onedark")
	v.SetDefault("docs_base_url", DefaultDocsBaseURL)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(DataDir(), "gptflow.log"))
	v.SetDefault("web_port", "8080")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("GPTFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadConfig reads ~/.gptflow.yaml. A missing file leaves the defaults in place.
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit file. Later calls to Write
// go back to that file. An empty path means ~/.gptflow.yaml.
func LoadConfigFile(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gptflow")
	}
	viper.SetConfigType("yaml")

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// LoadConfigFrom reads an explicit config file into a fresh viper instance.
// An empty path yields defaults only.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	cfg, _ := LoadConfigFrom("")
	return cfg
}

func SaveConfig(key string, value interface{}) error {
	viper.Set(key, value)
	return Write()
}

// Set changes a value in memory; call Write to persist it.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// Write saves the current values to the file LoadConfigFile was given, or
// to ~/.gptflow.yaml.
func Write() error {
	if used := viper.ConfigFileUsed(); used != "" {
		return viper.WriteConfigAs(used)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, ".gptflow.yaml"))
}

func GetString(key string) string {
	return viper.GetString(key)
}
