package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "shown", entries[0]["message"])
	assert.Contains(t, entries[0], "time")
}

func TestNewLeavesTimeFormatAlone(t *testing.T) {
	previous := zerolog.TimeFieldFormat
	t.Cleanup(func() { zerolog.TimeFieldFormat = previous })

	zerolog.TimeFieldFormat = time.RFC1123
	New(&bytes.Buffer{}, zerolog.InfoLevel)

	assert.Equal(t, time.RFC1123, zerolog.TimeFieldFormat)
}

func trace(l gormlogger.Interface, elapsed time.Duration, err error) {
	l.Trace(context.Background(), time.Now().Add(-elapsed), func() (string, int64) {
		return `SELECT * FROM "employees"`, 3
	}, err)
}

func TestGormLoggerSeverity(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(New(&buf, zerolog.DebugLevel), gormlogger.Warn, time.Second)

	trace(l, time.Millisecond, nil)
	assert.Zero(t, buf.Len(), "fast successful queries stay quiet at Warn")

	trace(l, time.Millisecond, errors.New("violates foreign key constraint"))
	trace(l, 2*time.Second, nil)
	trace(l, time.Millisecond, gorm.ErrRecordNotFound)
	l.Error(context.Background(), "failed to %s", "connect")

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 3)

	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "gorm", entries[0]["component"])
	assert.Equal(t, "violates foreign key constraint", entries[0]["error"])
	assert.Equal(t, `SELECT * FROM "employees"`, entries[0]["sql"])
	assert.EqualValues(t, 3, entries[0]["rows"])

	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "slow query >= 1s", entries[1]["message"])

	assert.Equal(t, "error", entries[2]["level"])
	assert.Equal(t, "failed to connect", entries[2]["message"])
}

func TestGormLoggerModes(t *testing.T) {
	var buf bytes.Buffer
	base := NewGormLogger(New(&buf, zerolog.DebugLevel), gormlogger.Warn, time.Second)

	trace(base.LogMode(gormlogger.Silent), time.Millisecond, errors.New("boom"))
	assert.Zero(t, buf.Len())

	trace(base.LogMode(gormlogger.Info), time.Millisecond, nil)
	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "query", entries[0]["message"])
}
