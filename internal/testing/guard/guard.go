// Package guard flips the application into test mode when imported. Tests
// that exercise wider wiring blank-import it so no server or worker side
// effects can start underneath them.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("YETER_TEST_MODE") == "" {
			_ = os.Setenv("YETER_TEST_MODE", "1")
		}
	})
}
