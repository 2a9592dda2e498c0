// configs/config.go
package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	MQTT      MQTTConfig
	Auth      AuthConfig
	Generator GeneratorConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

type AppConfig struct {
	Port      string // HTTP_PORT из .env
	LogLevel  string
	StaticDir string // Директория со статикой веб-интерфейса
}

type MQTTConfig struct {
	Broker   string // Пустая строка = анонсер выключен
	ClientID string
	Username string
	Password string
	QoS      int
	Topic    string
}

type AuthConfig struct {
	Required  bool   // AUTH_REQUIRED=true защищает мутирующие эндпоинты
	JWTSecret string // JWT_SECRET
}

// GeneratorConfig стартовые параметры генератора (дальше меняются через API)
type GeneratorConfig struct {
	Samples     int
	VoltageLow  float64
	VoltageHigh float64
	DateStart   string // YYYY-MM-DD
	DateEnd     string // YYYY-MM-DD
	Filename    string
}

// LoadConfig загружает конфигурацию из окружения (.env подхватывается, если есть)
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Конфигурация дополнена из .env")
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "voltlab_user"),
			Password: getEnv("DB_PASSWORD", "voltlab_password"),
			DBName:   getEnv("DB_NAME", "voltage_lab"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
		App: AppConfig{
			Port:      getEnv("HTTP_PORT", "8080"),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			StaticDir: getEnv("STATIC_DIR", "./web"),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			ClientID: getEnv("MQTT_CLIENT_ID", "voltage_lab_service"),
			Username: getEnv("MQTT_USERNAME", ""),
			Password: getEnv("MQTT_PASSWORD", ""),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
			Topic:    getEnv("MQTT_TOPIC", "voltagelab/datasets"),
		},
		Auth: AuthConfig{
			Required:  getEnvAsBool("AUTH_REQUIRED", false),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Generator: GeneratorConfig{
			Samples:     getEnvAsInt("GEN_SAMPLES", 100),
			VoltageLow:  getEnvAsFloat("GEN_VOLTAGE_LOW", 0.0),
			VoltageHigh: getEnvAsFloat("GEN_VOLTAGE_HIGH", 10.0),
			DateStart:   getEnv("GEN_DATE_START", "2020-01-01"),
			DateEnd:     getEnv("GEN_DATE_END", "2020-12-31"),
			Filename:    getEnv("GEN_FILENAME", "sample_data.csv"),
		},
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает переменную окружения как int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat получает переменную окружения как float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool получает переменную окружения как bool
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
