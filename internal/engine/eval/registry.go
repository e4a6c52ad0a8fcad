package eval

import (
	"fmt"
	"sort"

	errs "mnk_engine/internal/errors"
)

const (
	NameTerminal = "basic"
	NameRandom   = "random"
	NameLine     = "line"

	DefaultName = NameTerminal
)

type Factory func() Evaluator

var registry = map[string]Factory{
	NameTerminal: func() Evaluator { return NewTerminal() },
	NameRandom:   func() Evaluator { return NewRandom() },
	NameLine:     func() Evaluator { return NewLine() },
}

// New builds the evaluator registered under name.
func New(name string) (Evaluator, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown evaluator %q", errs.ErrConfiguration, name)
	}
	return factory(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name is a registered evaluator.
func Valid(name string) bool {
	_, ok := registry[name]
	return ok
}
