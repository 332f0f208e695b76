package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
}

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "meshcreator.txt")
	l := NewAt(path)
	l.now = fixedClock

	l.Log("Generating mesh...")
	l.Logf("Loaded %s example", "torus")

	want := []string{
		"[2024-03-09 14:05:06] Generating mesh...",
		"[2024-03-09 14:05:06] Loaded torus example",
	}
	assert.Equal(t, want, l.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := NewAt("")
	l.Log("x")
	assert.Len(t, l.Lines(), 1)
	assert.Equal(t, "", l.Path())
}

func TestLinesCapped(t *testing.T) {
	l := NewAt("")
	for i := 0; i < MaxLines+10; i++ {
		l.Log(fmt.Sprint(i))
	}
	lines := l.Lines()
	require.Len(t, lines, MaxLines)
	assert.True(t, strings.HasSuffix(lines[0], "] 10"))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], fmt.Sprintf("] %d", MaxLines+9)))
}

func TestLinesIsCopy(t *testing.T) {
	l := NewAt("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestEcho(t *testing.T) {
	l := NewAt("")
	l.now = fixedClock
	var buf bytes.Buffer
	l.SetEcho(&buf, termenv.WithProfile(termenv.Ascii))
	l.Log("Error: boom")
	l.SetEcho(nil)
	l.Log("quiet")
	assert.Equal(t, "[2024-03-09 14:05:06] Error: boom\n", buf.String())
}
