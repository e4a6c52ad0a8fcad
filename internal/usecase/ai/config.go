package ai

import (
	"fmt"
	"math"

	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
	errs "mnk_engine/internal/errors"
)

const (
	MinDepth = 1
	MaxDepth = math.MaxInt32
	// think time bounds in milliseconds
	MinTime = 10
	MaxTime = math.MaxInt32
)

type Config struct {
	MaxDepth  int
	MaxTimeMs int
	Evaluator string
	Searcher  string
	LogPV     bool
	LogMove   bool
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:  MaxDepth,
		MaxTimeMs: MaxTime,
		Evaluator: eval.DefaultName,
		Searcher:  search.DefaultName,
		LogPV:     true,
		LogMove:   true,
	}
}

func (c Config) Validate() error {
	if c.MaxDepth < MinDepth || c.MaxDepth > MaxDepth {
		return fmt.Errorf("%w: max depth %d outside [%d, %d]", errs.ErrConfiguration, c.MaxDepth, MinDepth, MaxDepth)
	}
	if c.MaxTimeMs < MinTime || c.MaxTimeMs > MaxTime {
		return fmt.Errorf("%w: max time %dms outside [%d, %d]", errs.ErrConfiguration, c.MaxTimeMs, MinTime, MaxTime)
	}
	if !eval.Valid(c.Evaluator) {
		return fmt.Errorf("%w: unknown evaluator %q", errs.ErrConfiguration, c.Evaluator)
	}
	if !search.Valid(c.Searcher) {
		return fmt.Errorf("%w: unknown searcher %q", errs.ErrConfiguration, c.Searcher)
	}
	return nil
}
