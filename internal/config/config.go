package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	HTTPAddr    string
	DatabaseURL string

	// Recognition gateway credential. Empty disables recognition; the gate
	// reports offline instead of crashing.
	GeminiAPIKey string

	// Admin console credentials. Empty disables the console.
	AdminPasswordHash string
	JWTSecret         string

	// Optional Telegram alerting.
	TelegramToken string
	AdminChatID   int64

	GateDeviceID string
}

var instance *ServerConfig
var once sync.Once

func GetServerConfig() *ServerConfig {
	once.Do(func() {
		instance = &ServerConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Info("No .env file found, using process environment")
		}

		instance.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
		if instance.GeminiAPIKey == "" {
			logrus.Warn("GEMINI_API_KEY not set, recognition will be disabled")
		}

		instance.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.AdminPasswordHash == "" || instance.JWTSecret == "" {
			logrus.Warn("Admin credentials not set, console will be disabled")
		}

		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		instance.AdminChatID = getEnvAsInt("ADMIN_CHAT_ID", 0)

		instance.GateDeviceID = getEnv("GATE_DEVICE_ID", "CAMPUS_GATE_01")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
