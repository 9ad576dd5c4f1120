package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Бэкенды хранилища
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config конфигурация приложения. Значения берутся из yaml-файла
// (необязательного) и переопределяются переменными окружения.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	App struct {
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`
	Storage struct {
		Backend  string `yaml:"backend"`
		FilePath string `yaml:"file_path"`
	} `yaml:"storage"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
}

// defaults задокументированные значения по умолчанию
func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.App.Env = "development"
	cfg.App.LogLevel = "info"
	cfg.Storage.Backend = BackendFile
	cfg.Storage.FilePath = "./data/db.json"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Name = "questionnaire"
	return cfg
}

// LoadConfig загружает конфигурацию: defaults -> yaml-файл -> окружение.
// Пустой путь или отсутствующий файл не считается ошибкой.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to open config file %s: %w", filename, err)
			}
		} else {
			// файл открыт только на чтение, ошибка Close безвредна
			defer func() { _ = f.Close() }()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", filename, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.Storage.Backend != BackendFile && cfg.Storage.Backend != BackendPostgres {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

// applyEnv переопределяет поля значениями переменных окружения
func (c *Config) applyEnv() {
	setIfPresent(&c.Server.Host, "HOST")
	setIfPresent(&c.Server.Port, "PORT")
	setIfPresent(&c.App.Env, "APP_ENV")
	setIfPresent(&c.App.LogLevel, "LOG_LEVEL")
	setIfPresent(&c.Storage.Backend, "STORAGE_BACKEND")
	setIfPresent(&c.Storage.FilePath, "STORAGE_FILE_PATH")
	setIfPresent(&c.Database.Host, "DATABASE_HOST")
	setIfPresent(&c.Database.Port, "DATABASE_PORT")
	setIfPresent(&c.Database.User, "DATABASE_USER")
	setIfPresent(&c.Database.Password, "DATABASE_PASSWORD")
	setIfPresent(&c.Database.Name, "DATABASE_NAME")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
