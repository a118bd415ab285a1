package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort      string `yaml:"APP_PORT"`
	AppURL       string `yaml:"APP_URL"`
	LogFile      string `yaml:"LOG_FILE"`
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBDriver     string `yaml:"DB_DRIVER"`
	DBUser       string `yaml:"DB_USER"`
	DBName       string `yaml:"DB_NAME"`
	DBPassword   string `yaml:"DB_PASSWORD"`
	DBPort       string `yaml:"DB_PORT"`
	DBHost       string `yaml:"DB_HOST"`
	DBSqlitePath string `yaml:"DB_SQLITE_PATH"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:       "8000",
		AppURL:        "http://localhost:8000",
		LogFile:       "./logs/app.log",
		RateLimitMax:  20,
		DBDriver:      "postgres",
		DBPort:        "5432",
		DBSqlitePath:  "foodgram.db",
		JWTTTLMinutes: 60 * 24,
		AWSS3Region:   "us-east-1",
	}
}

// LoadConfig reads config.yaml from the working directory. Environment
// variables with the same key take precedence over the file.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			SetConfig(key, value)
		}
	}
}

var configKeys = []string{
	"APP_PORT", "APP_URL", "LOG_FILE", "RATE_LIMIT_MAX",
	"DB_DRIVER", "DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST", "DB_SQLITE_PATH",
	"JWT_SECRET", "JWT_TTL_MINUTES",
	"AWS_S3_BUCKET", "AWS_S3_REGION", "AWS_S3_ENDPOINT", "AWS_ACCESS_KEY", "AWS_SECRET_KEY",
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return strconv.Itoa(config.RateLimitMax)
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SQLITE_PATH":
		return config.DBSqlitePath
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL_MINUTES":
		return strconv.Itoa(config.JWTTTLMinutes)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfigInt returns the value of key as an int, or fallback when it is
// missing or malformed.
func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return n
}

func SetConfig(key, value string) {
	switch key {
	case "APP_PORT":
		config.AppPort = value
	case "APP_URL":
		config.AppURL = value
	case "LOG_FILE":
		config.LogFile = value
	case "RATE_LIMIT_MAX":
		if n, err := strconv.Atoi(value); err == nil {
			config.RateLimitMax = n
		}
	case "DB_DRIVER":
		config.DBDriver = value
	case "DB_USER":
		config.DBUser = value
	case "DB_NAME":
		config.DBName = value
	case "DB_PASSWORD":
		config.DBPassword = value
	case "DB_PORT":
		config.DBPort = value
	case "DB_HOST":
		config.DBHost = value
	case "DB_SQLITE_PATH":
		config.DBSqlitePath = value
	case "JWT_SECRET":
		config.JWTSecret = value
	case "JWT_TTL_MINUTES":
		if n, err := strconv.Atoi(value); err == nil {
			config.JWTTTLMinutes = n
		}
	case "AWS_S3_BUCKET":
		config.AWSS3Bucket = value
	case "AWS_S3_REGION":
		config.AWSS3Region = value
	case "AWS_S3_ENDPOINT":
		config.AWSS3Endpoint = value
	case "AWS_ACCESS_KEY":
		config.AWSAccessKey = value
	case "AWS_SECRET_KEY":
		config.AWSSecretKey = value
	}
}
