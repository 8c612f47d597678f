// Package liftscore ranks red-flag features by how much more often they
// appear in fraudulent postings than in legitimate ones.
package liftscore

import (
	"math"
	"sort"
	"strconv"

	"github.com/slen516-afk/fraudboard/internal/domain/country"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// Default engine configuration constants.
const (
	// Epsilon replaces a zero legitimate rate when the fraudulent rate is positive.
	Epsilon = 1e-9

	defaultLimit = 6
	minScore     = 1.0
	maxScore     = 5.0
	neutralLift  = 1.0
)

// Candidate is a named red-flag predicate.
type Candidate struct {
	Name  string
	Match func(model.Record) bool
}

// Result is the evaluation of one candidate.
type Result struct {
	Name      string
	Hit       int
	FraudRate float64
	LegitRate float64
	Lift      float64
	Score     float64
}

// DefaultCandidates returns the built-in red flags in their fixed order.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "No company logo", Match: func(r model.Record) bool { return !r.HasCompanyLogo }},
		{Name: "No screening questions", Match: func(r model.Record) bool { return !r.HasQuestions }},
		{Name: "Remote position", Match: func(r model.Record) bool { return r.Telecommuting }},
		{Name: "Employment type unknown", Match: func(r model.Record) bool { return r.EmploymentType == model.Unknown }},
		{Name: "Industry unknown", Match: func(r model.Record) bool { return r.IndustryGroup == model.Unknown }},
		{Name: "Education level unknown", Match: func(r model.Record) bool { return r.EduLevel == model.Unknown }},
		{Name: "Country unspecified", Match: func(r model.Record) bool { return !country.Resolved(r.Country) }},
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCandidates replaces the candidate list. An empty list is ignored.
func WithCandidates(cs []Candidate) Option {
	return func(e *Engine) {
		if len(cs) > 0 {
			e.candidates = append([]Candidate(nil), cs...)
		}
	}
}

// WithEpsilon sets the zero-denominator substitute.
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		if eps > 0 {
			e.epsilon = eps
		}
	}
}

// WithLimit sets how many rows Table returns.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// Engine scores candidates. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	candidates []Candidate
	epsilon    float64
	limit      int
}

// NewEngine creates an engine with the default candidates.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		candidates: DefaultCandidates(),
		epsilon:    Epsilon,
		limit:      defaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score evaluates every candidate and returns them sorted by descending lift.
// Equal lifts keep candidate order.
func (e *Engine) Score(fraud, legit []model.Record) []Result {
	results := make([]Result, 0, len(e.candidates))
	for _, c := range e.candidates {
		hit := count(fraud, c.Match)
		fr := rate(hit, len(fraud))
		lr := rate(count(legit, c.Match), len(legit))
		results = append(results, Result{
			Name:      c.Name,
			Hit:       hit,
			FraudRate: fr,
			LegitRate: lr,
			Lift:      e.Lift(fr, lr),
		})
	}

	maxLift := 0.0
	for _, r := range results {
		maxLift = math.Max(maxLift, r.Lift)
	}
	for i := range results {
		results[i].Score = Rescale(results[i].Lift, maxLift)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Lift > results[j].Lift
	})
	return results
}

// Table renders the top rows as [name, hit, score].
func (e *Engine) Table(fraud, legit []model.Record) []types.Row {
	results := e.Score(fraud, legit)
	if len(results) > e.limit {
		results = results[:e.limit]
	}
	rows := make([]types.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, types.Row{r.Name, strconv.Itoa(r.Hit), strconv.FormatFloat(r.Score, 'f', 1, 64)})
	}
	return rows
}

// Lift is fraudRate/legitRate. A zero legitimate rate divides by the
// engine's epsilon instead; two zero rates are neutral (1.0).
func (e *Engine) Lift(fraudRate, legitRate float64) float64 {
	switch {
	case legitRate > 0:
		return fraudRate / legitRate
	case fraudRate > 0:
		return fraudRate / e.epsilon
	default:
		return neutralLift
	}
}

// Rescale maps lift onto [1, 5] relative to maxLift, rounded to one decimal.
func Rescale(lift, maxLift float64) float64 {
	if maxLift <= neutralLift {
		return minScore
	}
	s := minScore + (lift-neutralLift)/(maxLift-neutralLift)*(maxScore-minScore)
	s = math.Max(minScore, math.Min(maxScore, s))
	return math.Round(s*10) / 10
}

func count(records []model.Record, match func(model.Record) bool) int {
	n := 0
	for _, r := range records {
		if match(r) {
			n++
		}
	}
	return n
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
