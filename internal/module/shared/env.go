package shared

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env into the process environment before koanf runs
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		fmt.Println("No .env file found, reading environment variables directly")
	}
}
