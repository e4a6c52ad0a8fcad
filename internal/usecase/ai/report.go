package ai

import (
	"fmt"
	"strings"
	"time"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
)

const ReportHeader = "Depth\tTime\tNodes\tScore\tVariation"

type Square struct {
	Row int
	Col int
}

// DepthReport describes one completed iteration. Outcome is "win" or "draw"
// for proven results and empty otherwise; Distance is the plies to the end
// of a win or the squares left for a draw.
type DepthReport struct {
	Depth     int
	Elapsed   time.Duration
	Nodes     int64
	Result    search.Result
	Outcome   string
	Distance  int
	Variation []Square
}

func newDepthReport(s *mnk.State, depth int, elapsed time.Duration, nodes int64, r search.Result) DepthReport {
	report := DepthReport{
		Depth:   depth,
		Elapsed: elapsed,
		Nodes:   nodes,
		Result:  r,
	}
	if r.Proof {
		if r.Score != 0 {
			report.Outcome = "win"
			report.Distance = eval.MateDistance(r.Score)
		} else {
			report.Outcome = "draw"
			report.Distance = s.PseudolegalCount()
		}
	}
	for _, sq := range r.PV {
		report.Variation = append(report.Variation, Square{Row: s.Row(sq), Col: s.Col(sq)})
	}
	return report
}

// String renders the report as a tab separated telemetry line.
func (r DepthReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%.3f\t%d\t", r.Depth, r.Elapsed.Seconds(), r.Nodes)
	if r.Outcome != "" {
		fmt.Fprintf(&b, "%s-%d\t", r.Outcome, r.Distance)
	} else {
		fmt.Fprintf(&b, "%d\t", r.Result.Score)
	}
	for _, sq := range r.Variation {
		fmt.Fprintf(&b, "%d,%d ", sq.Row, sq.Col)
	}
	return b.String()
}
