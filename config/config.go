package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Case analysis limits
	Analysis AnalysisConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	DefaultProvider   string                  `yaml:"default_provider"`
	RequestTimeout    time.Duration           `yaml:"request_timeout"`
	Providers         []ProviderConfig        `yaml:"providers"`
	ModelCapabilities []ModelCapabilityConfig `yaml:"model_capabilities"`
}

// ProviderConfig holds server-side defaults for a single LLM provider
type ProviderConfig struct {
	Name    string `yaml:"name"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`

	// OpenRouter identification headers
	Referer string `yaml:"referer,omitempty"`
	Title   string `yaml:"title,omitempty"`
}

// ModelCapabilityConfig marks models matching Pattern (a regular expression)
// as able or unable to take an extended reasoning budget.
type ModelCapabilityConfig struct {
	Pattern           string `yaml:"pattern"`
	ExtendedReasoning bool   `yaml:"extended_reasoning"`
}

type AnalysisConfig struct {
	MaxFiles          int
	MaxFileBytes      int64
	RateLimitPerMin   int
	SystemInstruction string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM Provider Abstraction
	cfg.LLM.DefaultProvider = viper.GetString("llm.default_provider")
	cfg.LLM.RequestTimeout = viper.GetDuration("llm.request_timeout")

	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:    getStringFromMap(providerMap, "name"),
						APIKey:  expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL: getStringFromMap(providerMap, "base_url"),
						Model:   getStringFromMap(providerMap, "model"),
						Referer: getStringFromMap(providerMap, "referer"),
						Title:   getStringFromMap(providerMap, "title"),
					})
				}
			}
		}
	}

	// Flat env keys win over the file, e.g. GEMINI_API_KEY
	for _, name := range []string{"gemini", "openrouter", "local"} {
		if key := viper.GetString(name + "_api_key"); key != "" {
			cfg.LLM.setAPIKey(name, key)
		}
	}

	if viper.IsSet("llm.model_capabilities") {
		if capsList, ok := viper.Get("llm.model_capabilities").([]interface{}); ok {
			for _, c := range capsList {
				if capMap, ok := c.(map[string]interface{}); ok {
					cfg.LLM.ModelCapabilities = append(cfg.LLM.ModelCapabilities, ModelCapabilityConfig{
						Pattern:           getStringFromMap(capMap, "pattern"),
						ExtendedReasoning: getBoolFromMap(capMap, "extended_reasoning"),
					})
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Analysis
	cfg.Analysis.MaxFiles = viper.GetInt("analysis.max_files")
	cfg.Analysis.MaxFileBytes = viper.GetInt64("analysis.max_file_bytes")
	cfg.Analysis.RateLimitPerMin = viper.GetInt("analysis.rate_limit_per_min")
	cfg.Analysis.SystemInstruction = viper.GetString("analysis.system_instruction")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.default_provider", "gemini")
	viper.SetDefault("llm.request_timeout", "5m")

	// Analysis defaults
	viper.SetDefault("analysis.max_files", 10)
	viper.SetDefault("analysis.max_file_bytes", 20<<20)
	viper.SetDefault("analysis.rate_limit_per_min", 30)
}

// setAPIKey sets the key of the named provider, adding an entry when the
// provider is not listed.
func (c *LLMConfig) setAPIKey(name, key string) {
	for i := range c.Providers {
		if strings.EqualFold(c.Providers[i].Name, name) {
			c.Providers[i].APIKey = key
			return
		}
	}
	c.Providers = append(c.Providers, ProviderConfig{Name: name, APIKey: key})
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	seen := make(map[string]bool)
	for i, provider := range cfg.Providers {
		name := strings.ToLower(strings.TrimSpace(provider.Name))
		if name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("provider %s: configured twice", provider.Name)
		}
		seen[name] = true
	}

	for i, c := range cfg.ModelCapabilities {
		if c.Pattern == "" {
			return fmt.Errorf("model capability %d: pattern is required", i)
		}
	}

	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("llm.request_timeout must not be negative")
	}
	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}
