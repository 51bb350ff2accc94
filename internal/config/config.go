package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	AppEnv      string `mapstructure:"APP_ENV"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Store selection: sqlite, mysql or mongo
	DBDriver   string `mapstructure:"DB_DRIVER"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]string{
	"PORT":         "8080",
	"APP_ENV":      "development",
	"FRONTEND_URL": "http://localhost:3000",
	"DB_DRIVER":    "sqlite",
	"SQLITE_PATH":  "todos.db",
	"DB_HOST":      "localhost",
	"DB_PORT":      "3306",
	"DB_USER":      "root",
	"DB_PASSWORD":  "",
	"DB_NAME":      "todoapp",
	"MONGO_URI":    "mongodb://localhost:27017",
	"MONGO_DB":     "todoapp",
	"LOG_LEVEL":    "info",
	"LOG_FILE":     "",
}

// Load reads .env (if any) into the environment, then binds every known key
// with its default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MySQLDSN returns the go-sql-driver DSN for the configured MySQL server
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
