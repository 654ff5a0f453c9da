package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config - настройки приложения
type Config struct {
	Server ServerConfig
	Bench  BenchConfig
	Debug  bool
}

// ServerConfig - адрес HTTP-сервера
type ServerConfig struct {
	Host string
	Port int
}

// BenchConfig - параметры замера производительности
type BenchConfig struct {
	Iterations  int
	MessageSize int
	Seed        int
}

// Load читает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SYMCIPHER_HOST", "127.0.0.1"),
			Port: getEnvInt("SYMCIPHER_PORT", 8080),
		},
		Bench: BenchConfig{
			Iterations:  getEnvInt("SYMCIPHER_BENCH_ITERATIONS", 15),
			MessageSize: getEnvInt("SYMCIPHER_BENCH_MESSAGE_SIZE", 1024),
			Seed:        getEnvInt("SYMCIPHER_BENCH_SEED", 1),
		},
		Debug: getEnvBool("SYMCIPHER_DEBUG", false),
	}
}

// Addr возвращает host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (c *Config) String() string {
	return fmt.Sprintf(`
Server: %s
Bench: %d итераций, сообщение %d байт, seed %d
Debug: %t`,
		c.Server.Addr(),
		c.Bench.Iterations, c.Bench.MessageSize, c.Bench.Seed,
		c.Debug,
	)
}
