package app

import (
	"os"
	"sync"
)

const testModeEnv = "CAMPDIR_TEST_MODE"

var (
	testMode     bool
	testModeOnce sync.Once
)

// InTestMode reports whether the binaries should skip runtime side effects
// such as opening network listeners. Set CAMPDIR_TEST_MODE=1 to enable.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testMode = os.Getenv(testModeEnv) == "1"
	})
	return testMode
}
