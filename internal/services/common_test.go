package services

import (
	"os"
	"sync"
	"testing"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/logging"
)

var testSetupOnce sync.Once

// setupTestEnvironment initializes configuration and logging once for the
// entire package.
func setupTestEnvironment(t *testing.T) {
	t.Helper()

	testSetupOnce.Do(func() {
		os.Setenv("STORAGE_BACKEND", "memory")
		os.Setenv("ENVIRONMENT", "test")

		if err := config.LoadConfig(); err != nil {
			panic(err)
		}
		if err := logging.InitLogger(); err != nil {
			panic(err)
		}
	})
}
