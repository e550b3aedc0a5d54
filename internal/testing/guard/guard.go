// Package guard forces test mode before any runtime bootstrap code runs.
// Blank-import it from packages whose tests must never touch live services.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("SUNVOLT_TEST_MODE") == "" {
			_ = os.Setenv("SUNVOLT_TEST_MODE", "1")
		}
	})
}
