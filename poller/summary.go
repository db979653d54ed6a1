package poller

import (
	"time"

	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/types"
)

// Outcome is the result of one device pipeline
type Outcome struct {
	Target   types.Target
	Kind     types.Kind
	Category types.Category
	Err      error

	// Interfaces is the number of interfaces the parser returned
	Interfaces int
	Skipped    int
	Counts     sink.Counts
	Duration   time.Duration
}

// OK reports whether the pipeline finished without a failure
func (o Outcome) OK() bool {
	return o.Category == types.CategoryNone
}

// Summary aggregates the outcomes of one run
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	Devices     int
	Succeeded   int
	Unsupported int
	// Empty counts devices that answered without data; they are not failures
	Empty    int
	Failures map[types.Category]int

	Skipped int
	Counts  sink.Counts

	Outcomes []Outcome
}

func newSummary(runID string, started time.Time) *Summary {
	return &Summary{
		RunID:     runID,
		StartedAt: started,
		Failures:  make(map[types.Category]int),
	}
}

func (s *Summary) add(o Outcome) {
	s.Devices++
	s.Skipped += o.Skipped
	s.Counts.Add(o.Counts)
	switch {
	case o.OK():
		s.Succeeded++
	case o.Category == types.CategoryEmptyOutput:
		s.Empty++
	default:
		s.Failures[o.Category]++
	}
	s.Outcomes = append(s.Outcomes, o)
}

// Failed returns the number of devices whose pipeline failed
func (s *Summary) Failed() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// AllFailed reports whether every polled device failed
func (s *Summary) AllFailed() bool {
	return s.Devices > 0 && s.Failed() == s.Devices
}

// Fields returns the summary as log fields
func (s *Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", s.RunID),
		zap.Duration("duration", s.Duration),
		zap.Int("devices", s.Devices),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("unsupported", s.Unsupported),
		zap.Int("transport_failures", s.Failures[types.CategoryTransport]),
		zap.Int("empty_output", s.Empty),
		zap.Int("parse_mismatch", s.Failures[types.CategoryParseMismatch]),
		zap.Int("persistence_failures", s.Failures[types.CategoryPersistence]),
		zap.Int("interfaces", s.Counts.Interfaces),
		zap.Int("status", s.Counts.Status),
		zap.Int("stats", s.Counts.Stats),
		zap.Int("readings", s.Counts.Readings),
		zap.Int("modules", s.Counts.Modules),
		zap.Int("unmatched", s.Counts.Unmatched),
		zap.Int("skipped", s.Skipped),
	}
}
