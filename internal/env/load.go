// Package env loads KEY=VALUE files such as .env into the process environment.
package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is read from the working directory at startup.
const DefaultFile = ".env"

// Load reads the given files (".env" when none are named) and sets an
// environment variable for each KEY=VALUE line. Variables already set in
// the environment win. Missing files are not an error.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultFile}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
