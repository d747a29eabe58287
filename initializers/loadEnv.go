package initializers

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from the given .env files into the process
// environment. A missing file is not an error; existing variables win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("Error loading .env file:", err)
	}
}
