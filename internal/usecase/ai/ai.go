package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
	errs "mnk_engine/internal/errors"
)

// Decision is the move chosen by Think. Result and Depth belong to the last
// completed iteration; Random is set when no iteration completed.
type Decision struct {
	Move    int
	Row     int
	Col     int
	Result  search.Result
	Depth   int
	Random  bool
	Nodes   int64
	Elapsed time.Duration
	Reports []DepthReport
}

// AI picks moves for the player to move in its game by iterative deepening.
// It is not safe for concurrent use and the game must not change while
// Think runs.
type AI struct {
	state     *mnk.State
	cfg       Config
	log       *zap.SugaredLogger
	evaluator eval.Evaluator
	searcher  search.Searcher
	onDepth   func(DepthReport)
	rng       *rand.Rand
}

func New(state *mnk.State, cfg Config, log *zap.SugaredLogger) (*AI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &AI{
		state: state,
		cfg:   cfg,
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := a.rebuild(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AI) rebuild() error {
	e, err := eval.New(a.cfg.Evaluator)
	if err != nil {
		return err
	}
	s, err := search.New(a.cfg.Searcher, a.state, e)
	if err != nil {
		return err
	}
	a.evaluator, a.searcher = e, s
	return nil
}

func (a *AI) Config() Config            { return a.cfg }
func (a *AI) Game() *mnk.State          { return a.state }
func (a *AI) Searcher() search.Searcher { return a.searcher }

func (a *AI) SetMaxDepth(depth int) error {
	cfg := a.cfg
	cfg.MaxDepth = depth
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *AI) SetMaxTime(ms int) error {
	cfg := a.cfg
	cfg.MaxTimeMs = ms
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *AI) SetEvaluator(name string) error {
	return a.reconfigure(func(c *Config) { c.Evaluator = name })
}

func (a *AI) SetSearcher(name string) error {
	return a.reconfigure(func(c *Config) { c.Searcher = name })
}

func (a *AI) SetLogging(pv, move bool) {
	a.cfg.LogPV, a.cfg.LogMove = pv, move
}

// SetGame points the AI at another game, dropping any searcher state.
func (a *AI) SetGame(state *mnk.State) error {
	prev := a.state
	a.state = state
	if err := a.rebuild(); err != nil {
		a.state = prev
		return err
	}
	return nil
}

// OnDepth registers a callback invoked after every completed iteration.
func (a *AI) OnDepth(fn func(DepthReport)) {
	a.onDepth = fn
}

func (a *AI) reconfigure(change func(*Config)) error {
	prev := a.cfg
	change(&a.cfg)
	if err := a.cfg.Validate(); err != nil {
		a.cfg = prev
		return err
	}
	if err := a.rebuild(); err != nil {
		a.cfg = prev
		return err
	}
	return nil
}

// Think searches depth 1, 2, ... until the depth limit, the time budget or
// a proven result. An iteration cut short by the budget or by ctx is
// discarded. Without any completed iteration a random legal move is chosen.
func (a *AI) Think(ctx context.Context) (Decision, error) {
	if a.state.LegalCount() == 0 {
		return Decision{}, fmt.Errorf("%w: game is over", errs.ErrNoLegalMoves)
	}

	start := time.Now()
	budget := time.Duration(a.cfg.MaxTimeMs) * time.Millisecond
	var decision Decision
	completed := false

	if a.cfg.LogPV {
		a.log.Info(ReportHeader)
	}
	for depth := 1; depth <= a.cfg.MaxDepth; depth++ {
		remaining := budget - time.Since(start)
		if remaining <= 0 {
			break
		}
		r, err := a.searchDepth(ctx, depth, remaining)
		decision.Nodes += a.searcher.Nodes()
		if err != nil {
			if errors.Is(err, errs.ErrSearchCancelled) {
				break
			}
			return Decision{}, err
		}

		completed = true
		decision.Result, decision.Depth = r, depth
		report := newDepthReport(a.state, depth, time.Since(start), a.searcher.Nodes(), r)
		decision.Reports = append(decision.Reports, report)
		if a.cfg.LogPV {
			a.log.Info(report.String())
		}
		if a.onDepth != nil {
			a.onDepth(report)
		}
		if r.Proof {
			break
		}
	}

	if completed && decision.Result.Move() >= 0 {
		decision.Move = decision.Result.Move()
	} else {
		move, err := a.randomMove()
		if err != nil {
			return Decision{}, err
		}
		decision.Move, decision.Random = move, true
	}
	decision.Row, decision.Col = a.state.Row(decision.Move), a.state.Col(decision.Move)
	decision.Elapsed = time.Since(start)

	if a.cfg.LogMove {
		a.log.Infof("AI move: (%d, %d)", decision.Row, decision.Col)
	}
	return decision, nil
}

// progressInterval is how often a running iteration reports its node rate.
var progressInterval = time.Second

// searchDepth runs one iteration bounded by budget next to a reporter that
// logs nodes per second until the search returns.
func (a *AI) searchDepth(ctx context.Context, depth int, budget time.Duration) (search.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var r search.Result
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		var last int64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := a.searcher.Nodes()
				a.log.Debugw("search progress", "depth", depth, "nodes", nodes, "nps", float64(nodes-last)/progressInterval.Seconds())
				last = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var err error
		r, err = a.searcher.Search(gctx, depth)
		return err
	})

	if err := g.Wait(); err != nil {
		return search.Result{}, err
	}
	return r, nil
}

// randomMove draws uniformly among legal moves in a single pass.
func (a *AI) randomMove() (int, error) {
	total := a.state.LegalCount()
	i := 0
	moves := a.state.LegalMoves()
	for sq, ok := moves.Next(); ok; sq, ok = moves.Next() {
		if a.rng.Intn(total-i) == 0 {
			return sq, nil
		}
		i++
	}
	return -1, fmt.Errorf("%w: no legal move drawn", errs.ErrInternal)
}
