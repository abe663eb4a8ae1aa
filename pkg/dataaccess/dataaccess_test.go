package dataaccess

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/stretchr/testify/require"
)

// setupStores opens the three stores in a fresh temp directory. The debounce
// is long enough that no background flush runs during a test.
func setupStores(t *testing.T) *slog.Logger {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	Open(l, t.TempDir(), time.Hour)
	t.Cleanup(func() {
		ConfigStore = nil
		TicketStore = nil
		BlacklistStore = nil
	})
	return l
}
