package rankgo

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLoggerDiscards(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewLogger(handler).WithSlot(3).WithShards(2)

	l.LogCollapse(context.Background(), 4, 2, 1)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"slot":3`)
	assert.Contains(t, out, `"shards":2`)
	assert.Contains(t, out, `"dups_ignored":2`)
}
