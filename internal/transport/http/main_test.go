package http

import (
	"os"
	"testing"

	"churchapp/internal/observability/metrics"
)

func TestMain(m *testing.M) {
	metrics.MustRegister("churchapp-transport-test")
	os.Exit(m.Run())
}
