package app

import (
	"os"
	"sync"
)

// The flag is read once on first use. Test packages import
// internal/testing/guard, whose init sets the variable before any
// entrypoint code can ask.
var inTestMode = sync.OnceValue(func() bool {
	return os.Getenv("YETER_TEST_MODE") == "1"
})

// InTestMode reports whether server and worker entrypoints should return
// before starting any runtime side effects.
func InTestMode() bool {
	return inTestMode()
}
