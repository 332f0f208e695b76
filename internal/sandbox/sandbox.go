// Package sandbox runs user mesh scripts. A script is Go source interpreted
// by yaegi with a fixed binding table: the geometry library as package
// three, the output group as generatedMesh and the status callback as
// logStatus. Nothing else is importable.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing/fstest"
	"time"

	"mesh-creator/internal/geom"

	"github.com/traefik/yaegi/interp"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

const (
	outputVar = "generatedMesh"
	logVar    = "logStatus"
)

// ErrNoMesh is returned when a script finishes without adding anything to
// the output group.
var ErrNoMesh = errors.New("no mesh generated")

// ExecError is a failure while compiling or running a script.
type ExecError struct {
	Err error
}

func (e *ExecError) Error() string { return e.Err.Error() }

func (e *ExecError) Unwrap() error { return e.Err }

// Options configure a Sandbox.
type Options struct {
	// Timeout bounds each Run. Zero means DefaultTimeout.
	Timeout time.Duration
	// OnLog, if set, is called for every logStatus call as it happens.
	OnLog func(msg string)
}

// Result is the outcome of a successful run.
type Result struct {
	// Output is the group the script filled.
	Output *geom.Group
	// Logs are the logStatus messages in call order.
	Logs []string
	// Stdout is anything the script printed.
	Stdout string
}

// LastLog returns the final logStatus message, or "" when none was logged.
func (r *Result) LastLog() string {
	if len(r.Logs) == 0 {
		return ""
	}
	return r.Logs[len(r.Logs)-1]
}

// Sandbox executes scripts. It is safe for concurrent use; each Run gets a
// fresh interpreter.
type Sandbox struct {
	opts Options
}

// New returns a sandbox with the given options.
func New(opts Options) *Sandbox {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Sandbox{opts: opts}
}

// Run interprets code and returns the populated output group. Compile
// errors, go statements, runaway recursion, panics and timeouts come back
// as *ExecError. A script that adds nothing to generatedMesh fails with
// ErrNoMesh.
func (s *Sandbox) Run(ctx context.Context, code string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	out := geom.NewGroup()
	var (
		mu   sync.Mutex
		logs []string
	)
	logStatus := func(msg string) {
		mu.Lock()
		logs = append(logs, msg)
		mu.Unlock()
		if s.opts.OnLog != nil {
			s.opts.OnLog(msg)
		}
	}

	src, err := instrument(wrap(code))
	if err != nil {
		return nil, &ExecError{Err: err}
	}

	guard := &callGuard{}
	var stdout bytes.Buffer
	in := interp.New(interp.Options{
		Stdout:               &stdout,
		Stderr:               &stdout,
		SourcecodeFilesystem: fstest.MapFS{},
	})
	for _, syms := range []interp.Exports{stdlibSymbols(), Symbols, hostSymbols(out, logStatus, guard)} {
		if err := in.Use(syms); err != nil {
			return nil, fmt.Errorf("binding symbols: %w", err)
		}
	}
	in.ImportUsed()

	if err := eval(ctx, in, src); err != nil {
		return nil, &ExecError{Err: err}
	}
	if out.Len() == 0 {
		return nil, ErrNoMesh
	}
	mu.Lock()
	defer mu.Unlock()
	return &Result{Output: out, Logs: append([]string(nil), logs...), Stdout: stdout.String()}, nil
}

func eval(ctx context.Context, in *interp.Interpreter, src string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	_, err = in.EvalWithContext(ctx, src)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("script timed out: %w", err)
	}
	return err
}

func hostSymbols(out *geom.Group, logStatus func(string), guard *callGuard) interp.Exports {
	return interp.Exports{
		HostPackage + "/" + HostPackage: {
			"GeneratedMesh": reflect.ValueOf(out),
			"LogStatus":     reflect.ValueOf(logStatus),
			"Enter":         reflect.ValueOf(guard.Enter),
			"Leave":         reflect.ValueOf(guard.Leave),
		},
	}
}

// wrap puts code inside func main with the bare host names bound as locals.
// The bindings share the first line with the code so reported line numbers
// match the editor. Code declaring its own main gets package-level
// bindings appended instead.
func wrap(code string) string {
	var b strings.Builder
	if strings.Contains(code, "func main()") {
		b.WriteString(code)
		fmt.Fprintf(&b, "\nvar %s = %s.GeneratedMesh", outputVar, HostPackage)
		fmt.Fprintf(&b, "\nvar %s = %s.LogStatus\n", logVar, HostPackage)
		return b.String()
	}
	fmt.Fprintf(&b, "func main() { %s, %s := %s.GeneratedMesh, %s.LogStatus; _, _ = %s, %s; ",
		outputVar, logVar, HostPackage, HostPackage, outputVar, logVar)
	b.WriteString(code)
	b.WriteString("\n}\n")
	return b.String()
}
