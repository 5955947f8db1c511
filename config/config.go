// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Detector DetectorConfig `mapstructure:"detector"`
	Events   EventsConfig   `mapstructure:"events"`
}

type ServerConfig struct {
	AppVersion     string `json:"appVersion"`
	Host           string `json:"host" validate:"required"`
	Port           string `json:"port" validate:"required"`
	Timeout        time.Duration
	Idle_timeout   time.Duration
	Env            string   `json:"environment"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ModelConfig struct {
	Path         string `mapstructure:"path"`
	MetadataPath string `mapstructure:"metadata_path"`
	ImageSize    int    `mapstructure:"image_size"`
}

type DetectorConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	InferenceURL string        `mapstructure:"inference_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	GeminiModels []string      `mapstructure:"gemini_models"`
	AdvicePath   string        `mapstructure:"advice_path"`
}

type EventsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	c.applyDefaults()

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = GetEnv("PORT", "8000")
	}
	if c.Model.ImageSize == 0 {
		c.Model.ImageSize = 180
	}
	if c.Detector.Timeout == 0 {
		c.Detector.Timeout = 30 * time.Second
	}
	if c.Detector.InferenceURL == "" {
		c.Detector.InferenceURL = "https://api-inference.huggingface.co/models/PlantDoc/plant-disease-detection-v2"
	}
	if len(c.Detector.GeminiModels) == 0 {
		c.Detector.GeminiModels = []string{"gemini-pro", "gemini-1.5-pro"}
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
