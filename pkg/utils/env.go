package utils

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig reads an optional .env file from the given path and wires every
// environment variable into viper so the cmd layer can read them uniformly.
func LoadConfig(path string) {
	// A missing .env file is not an error; environment variables still apply.
	_ = godotenv.Load(strings.TrimSuffix(path, "/") + "/.env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
