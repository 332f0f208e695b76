package sandbox

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"
	"sync/atomic"
)

// MaxCallDepth bounds how deeply script functions may nest calls.
const MaxCallDepth = 4096

// ErrCallDepth is the panic raised when a script recurses past MaxCallDepth.
var ErrCallDepth = errors.New("maximum call depth exceeded")

// ErrGoStatement rejects scripts that start goroutines.
var ErrGoStatement = errors.New("go statements are not allowed")

const guardCall = HostPackage + ".Enter(); defer " + HostPackage + ".Leave(); "

// callGuard counts live script calls for one run.
type callGuard struct {
	depth atomic.Int64
}

func (g *callGuard) Enter() {
	if g.depth.Add(1) > MaxCallDepth {
		panic(ErrCallDepth)
	}
}

func (g *callGuard) Leave() {
	g.depth.Add(-1)
}

// instrument rejects go statements and prepends the call guard to every
// function body in src. Insertions stay on the line of the opening brace so
// positions in later errors still match the editor.
func instrument(src string) (string, error) {
	fset := token.NewFileSet()
	file, shift, err := parseScript(fset, src)
	if err != nil {
		return "", err
	}

	var (
		bodies []int
		goStmt token.Pos
	)
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.GoStmt:
			if !goStmt.IsValid() {
				goStmt = n.Pos()
			}
		case *ast.FuncDecl:
			if n.Body != nil {
				bodies = append(bodies, fset.Position(n.Body.Lbrace).Offset-shift)
			}
		case *ast.FuncLit:
			bodies = append(bodies, fset.Position(n.Body.Lbrace).Offset-shift)
		}
		return true
	})
	if goStmt.IsValid() {
		p := fset.Position(goStmt)
		return "", fmt.Errorf("%d:%d: %w", p.Line, p.Column, ErrGoStatement)
	}

	sort.Ints(bodies)
	var b strings.Builder
	last := 0
	for _, off := range bodies {
		b.WriteString(src[last : off+1])
		b.WriteString(guardCall)
		last = off + 1
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

// parseScript parses src as a file, adding a package clause on the first
// line when src has none. shift is the length of anything added.
func parseScript(fset *token.FileSet, src string) (*ast.File, int, error) {
	if f, err := parser.ParseFile(fset, "script", src, parser.SkipObjectResolution); err == nil {
		return f, 0, nil
	}
	const clause = "package main; "
	f, err := parser.ParseFile(fset, "script", clause+src, parser.SkipObjectResolution)
	if err != nil {
		return nil, 0, err
	}
	return f, len(clause), nil
}
