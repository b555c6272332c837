package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFile is loaded before the environment is read. Variables that are
// already set in the process win over the file.
var dotenvFile = ".env"

// parseEnv overlays YOGA_* environment variables onto config. Fields whose
// variable is unset keep their current value. A missing .env file is not an
// error; an unreadable one or a malformed value panics.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
