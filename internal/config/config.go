package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config представляет структуру конфигурации для приложения.
type Config struct {
	App struct {
		Port         string `mapstructure:"port"`
		Env          string `mapstructure:"env"`
		ReadTimeout  int    `mapstructure:"readTimeout"`
		WriteTimeout int    `mapstructure:"writeTimeout"`
	} `mapstructure:"app"`
	Storage struct {
		// Driver выбирает бэкенд репозитория: cassandra, postgres или memory
		Driver string `mapstructure:"driver"`
	} `mapstructure:"storage"`
	Cassandra struct {
		Hosts       []string `mapstructure:"hosts"`
		Keyspace    string   `mapstructure:"keyspace"`
		Consistency string   `mapstructure:"consistency"`
	} `mapstructure:"cassandra"`
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Kafka struct {
		Enabled bool     `mapstructure:"enabled"`
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig загружает конфигурацию из файла или переменных окружения.
func LoadConfig(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// .env опционален: в контейнере конфигурация приходит через окружение
		_ = godotenv.Load(path)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.readTimeout", 10)
	viper.SetDefault("app.writeTimeout", 0) // 0 — без лимита, иначе SSE поток оборвется
	viper.SetDefault("storage.driver", "cassandra")
	viper.SetDefault("cassandra.hosts", []string{"127.0.0.1"})
	viper.SetDefault("cassandra.keyspace", "customers")
	viper.SetDefault("cassandra.consistency", "QUORUM")
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv() // Чтение переменных окружения

	if err := viper.ReadInConfig(); err != nil {
		// Файл конфигурации опционален, дефолты и окружение покрывают запуск
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
