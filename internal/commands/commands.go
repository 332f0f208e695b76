package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/mattn/go-shellwords"
)

const prefix = "cmd "

// ErrUnknown is returned by Execute for a name that was never registered.
var ErrUnknown = errors.New("unknown command")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute or Run.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set that reports parse errors instead of exiting
// and does not print usage to stderr.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token of a command line (e.g. "grid").
// fs is that command's FlagSet (nil for none); run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Help returns one "name: usage" line per command.
func (r *Registry) Help() []string {
	var out []string
	for _, name := range r.Names() {
		out = append(out, name+": "+r.cmds[name].Usage)
	}
	return out
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
// the rest is split shell-style (quotes group words) and returned with ok true. Otherwise nil, false.
// A line with unbalanced quotes yields no args.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	args, err := shellwords.Parse(line[len(prefix):])
	if err != nil {
		return nil, true
	}
	return args, true
}

// Run executes a bare command line such as "preset -name torus", as bound
// to editor key chords. A leading "cmd " is accepted too.
func (r *Registry) Run(line string) error {
	if args, ok := Parse(line); ok {
		return r.Execute(args)
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", line, err)
	}
	return r.Execute(args)
}

// Suggest returns the registered name closest to name, or "" when nothing
// is similar enough.
func (r *Registry) Suggest(name string) string {
	const threshold = 0.5
	lev := metrics.NewLevenshtein()
	best, score := "", 0.0
	for _, n := range r.Names() {
		if s := strutil.Similarity(name, n, lev); s > score {
			best, score = n, s
		}
	}
	if score < threshold {
		return ""
	}
	return best
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		if s := r.Suggest(name); s != "" {
			return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknown, name, s)
		}
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	// Flags left over from an earlier run would otherwise stick.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}
