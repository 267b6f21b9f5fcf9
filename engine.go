// Package reactor is the caller-facing glue layer: weak Handle[T] values
// over the graph/cell/trigger/invalidate/field/expr packages, and the
// constructors spec.md §6 names — Var, ConstVar, Calc, Action, Expr, Field.
//
// One Engine corresponds to one logical thread of execution (spec.md §5);
// nothing here is safe to share across goroutines, the same shape the
// teacher's per-ReactiveSystem instances use instead of a package global.
package reactor

import (
	"github.com/flowgraph/reactor/field"
	"github.com/flowgraph/reactor/graph"
	"github.com/flowgraph/reactor/internal/reactorlog"
)

// Engine owns the dependency graph and the field index for one thread of
// execution.
type Engine struct {
	g      *graph.Graph
	fields *field.Index
}

// New creates an empty Engine. log may be nil, in which case diagnostics go
// to internal/reactorlog's package default.
func New(log *reactorlog.Logger) *Engine {
	return &Engine{
		g:      graph.New(log),
		fields: field.NewIndex(),
	}
}

// Graph exposes the underlying dependency graph for callers (notably
// internal/report) that need to introspect the live node set.
func (e *Engine) Graph() *graph.Graph { return e.g }
