package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig_Defaults проверяет значения по умолчанию без файла и окружения
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != "8080" {
		t.Errorf("server: %+v", cfg.Server)
	}
	if cfg.Storage.Backend != BackendFile || cfg.Storage.FilePath != "./data/db.json" {
		t.Errorf("storage: %+v", cfg.Storage)
	}
	if cfg.App.Env != "development" || cfg.App.LogLevel != "info" {
		t.Errorf("app: %+v", cfg.App)
	}
}

// TestLoadConfig_MissingFileIgnored проверяет, что отсутствующий файл не ошибка
func TestLoadConfig_MissingFileIgnored(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml")); err != nil {
		t.Errorf("отсутствующий файл не должен быть ошибкой: %v", err)
	}
}

// TestLoadConfig_YAMLFile проверяет чтение yaml-файла
func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: "9090"
storage:
  backend: postgres
database:
  host: db.internal
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("не удалось записать файл: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port: %q", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("backend: %q", cfg.Storage.Backend)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database host: %q", cfg.Database.Host)
	}
	// незатронутые файлом поля сохраняют дефолты
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host: %q", cfg.Server.Host)
	}
}

// TestLoadConfig_EnvOverrides проверяет приоритет окружения над файлом
func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0644); err != nil {
		t.Fatalf("не удалось записать файл: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("STORAGE_FILE_PATH", "/tmp/custom.json")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("окружение должно переопределять файл, получено %q", cfg.Server.Port)
	}
	if cfg.Storage.FilePath != "/tmp/custom.json" {
		t.Errorf("file_path: %q", cfg.Storage.FilePath)
	}
}

// TestLoadConfig_UnknownBackend проверяет отказ по неизвестному бэкенду
func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	if _, err := LoadConfig(""); err == nil {
		t.Error("неизвестный бэкенд должен быть отклонен")
	}
}
