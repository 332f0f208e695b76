package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// LogFilePath is the default log file, relative to the working directory (project root when run via go run ./cmd/meshcreator).
const LogFilePath = "logs/meshcreator.txt"

// MaxLines caps the in-memory history shown by the log overlay. The file keeps everything.
const MaxLines = 500

// Logger keeps recent lines (status changes, script logs, errors) in memory and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
	echo  *termenv.Output
	echoW io.Writer
}

// New returns a Logger writing to LogFilePath and ensures the logs directory exists.
func New() *Logger {
	return NewAt(LogFilePath)
}

// NewAt returns a Logger writing to path. An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// SetEcho mirrors every line to w, with error lines in red when w is a
// color terminal. A nil w turns echoing off.
func (l *Logger) SetEcho(w io.Writer, opts ...termenv.OutputOption) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		l.echo, l.echoW = nil, nil
		return
	}
	l.echo, l.echoW = termenv.NewOutput(w, opts...), w
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Log appends a line to the logger and to the log file on disk. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - MaxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	if l.echo != nil {
		out := l.echo.String(stamped)
		if strings.Contains(line, "Error") {
			out = out.Foreground(l.echo.Color("1"))
		}
		fmt.Fprintln(l.echoW, out.String())
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
