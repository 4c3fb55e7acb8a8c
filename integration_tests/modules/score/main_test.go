package scoreintegrationtests

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/wordle-bot/integration_tests/testutils"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	code := m.Run()
	testutils.ShutdownSharedEnv()
	os.Exit(code)
}
