package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultSettingsPath = "okuri_settings.json"
	defaultDownloadDir  = "."

	zipcloudBaseURL = "https://zipcloud.ibsnet.co.jp/api/search"
	emailJSBaseURL  = "https://api.emailjs.com/api/v1.0/email/send"
)

// Config carries everything read from the environment. Admin-editable
// values (recipients, EmailJS credentials, passcode) live in the settings
// store instead, not here.
type Config struct {
	GeminiAPIKey string
	SettingsPath string
	DownloadDir  string
	ZipcloudURL  string
	EmailJSURL   string
}

// Load probes for a .env file in the working directory and its parents,
// then assembles the configuration from the environment. A missing .env is
// not an error.
func Load() Config {
	loadEnv()

	return Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		SettingsPath: getenvDefault("OKURI_SETTINGS_PATH", defaultSettingsPath),
		DownloadDir:  getenvDefault("OKURI_DOWNLOAD_DIR", defaultDownloadDir),
		ZipcloudURL:  getenvDefault("OKURI_ZIPCLOUD_URL", zipcloudBaseURL),
		EmailJSURL:   getenvDefault("OKURI_EMAILJS_URL", emailJSBaseURL),
	}
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		zap.L().Warn("could not determine working directory", zap.Error(err))
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			zap.L().Debug("loaded environment variables", zap.String("path", envPath))
			return
		}
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
