package search

import (
	"fmt"
	"sort"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	errs "mnk_engine/internal/errors"
)

const (
	NameMinimax   = "minimax"
	NameAlphaBeta = "alphabeta"
	NameOrdered   = "alphabeta+"
	NameInsideOut = "alphabeta-io"

	DefaultName = NameMinimax
)

type Factory func(s *mnk.State, e eval.Evaluator) Searcher

var registry = map[string]Factory{
	NameMinimax:   func(s *mnk.State, e eval.Evaluator) Searcher { return NewMinimax(s, e) },
	NameAlphaBeta: func(s *mnk.State, e eval.Evaluator) Searcher { return NewAlphaBeta(s, e) },
	NameOrdered:   func(s *mnk.State, e eval.Evaluator) Searcher { return NewOrdered(s, e) },
	NameInsideOut: func(s *mnk.State, e eval.Evaluator) Searcher { return NewInsideOut(s, e) },
}

// New builds the searcher registered under name over s.
func New(name string, s *mnk.State, e eval.Evaluator) (Searcher, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown searcher %q", errs.ErrConfiguration, name)
	}
	return factory(s, e), nil
}

// Valid reports whether name is a registered searcher.
func Valid(name string) bool {
	_, ok := registry[name]
	return ok
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
