package main

import (
	"os"
	"time"

	"github.com/skinrally/backend/config"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "skinrally"),
			Password: getEnv("MYSQL_PASSWORD", "skinrally"),
			Database: getEnv("MYSQL_DATABASE", "skinrally"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", ""),
			Key:  getEnv("SERVER_KEY", ""),
		},
		Redis: config.RedisConfigs{
			Addr:                getEnv("REDIS_ADDRESS", "localhost:6379"),
			NotificationChannel: getEnv("REDIS_NOTIFICATION_CHANNEL", "notifications"),
			DialTimeout:         5 * time.Second,
		},
	}
}
