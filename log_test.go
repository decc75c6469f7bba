package rebloom

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

func TestUseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := btclog.NewSLogger(btclog.NewDefaultHandler(&buf))
	logger.SetLevel(btclog.LevelDebug)

	UseLogger(logger)
	t.Cleanup(DisableLog)

	_, err := New(100000, 4, 0.05)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "624699 bits, k=4")

	// Rejected parameters never reach the planner.
	buf.Reset()
	_, err = New(0, 4, 0.05)
	require.ErrorIs(t, err, ErrInvalidKeyCount)
	require.Empty(t, buf.String())
}
