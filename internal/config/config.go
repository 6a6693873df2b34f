package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LibraryPath         string
	DatabaseURL         string
	Neo4jURI            string
	Neo4jUser           string
	Neo4jPassword       string
	WorkerCount         int
	BatchSize           int
	EmbeddingDimensions int
	SourceLabel         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		LibraryPath:         getEnv("LIBRARY_PATH", "library.json"),
		DatabaseURL:         getEnv("DATABASE_URL", "postgres://localhost:5432/lexicanum?sslmode=disable"),
		Neo4jURI:            getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:           getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:       getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:         getEnvInt("WORKER_COUNT", 4),
		BatchSize:           getEnvInt("BATCH_SIZE", 100),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 256),
		SourceLabel:         getEnv("SOURCE_LABEL", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
