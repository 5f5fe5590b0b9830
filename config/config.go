package config

import (
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	// .env is optional, system environment wins on deploys
	godotenv.Load(".env")
	return os.Getenv(key)
}
