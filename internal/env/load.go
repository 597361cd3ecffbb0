package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv populates the process environment from a .env file when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

func MustGetEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}
