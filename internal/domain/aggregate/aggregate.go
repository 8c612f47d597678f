// Package aggregate turns a fetched recruitment table into the dashboard
// payload. Every section is computed independently from the same records.
package aggregate

import (
	"github.com/slen516-afk/fraudboard/internal/domain/liftscore"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// Default aggregation limits.
const (
	defaultRankingSize      = 5
	defaultTopCategories    = 6
	defaultMapSize          = 12
	defaultMaxScatterPoints = 25
	titleDisplayRunes       = 40
	ellipsis                = "…"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithMaxScatterPoints caps the number of section7 points.
func WithMaxScatterPoints(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxScatterPoints = n
		}
	}
}

// WithEngine sets the lift-score engine used for table2.
func WithEngine(e *liftscore.Engine) Option {
	return func(a *Aggregator) {
		if e != nil {
			a.engine = e
		}
	}
}

// Aggregator builds payloads. It keeps no state between calls.
type Aggregator struct {
	maxScatterPoints int
	engine           *liftscore.Engine
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		maxScatterPoints: defaultMaxScatterPoints,
		engine:           liftscore.NewEngine(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build is a shorthand for New(opts...).Build(t).
func Build(t model.Table, opts ...Option) (*types.Payload, error) {
	return New(opts...).Build(t)
}

// Build validates the table schema and computes every section.
// A missing column yields a *model.SchemaError and no payload; an empty
// table yields types.EmptyPayload().
func (a *Aggregator) Build(t model.Table) (*types.Payload, error) {
	if err := model.CheckColumns(t.Columns); err != nil {
		return nil, err
	}
	if len(t.Records) == 0 {
		return types.EmptyPayload(), nil
	}

	records := t.Records
	fraud, legit := model.Split(records)
	geo := newGeo(records)
	mapData, mapNames := geo.mapSection(defaultMapSize)

	return &types.Payload{
		Ranking: ranking(fraud, defaultRankingSize),
		Charts: types.Charts{
			Section1: composition(len(legit), len(fraud)),
			Section2: trend(records, defaultTopCategories),
			Section3: breakdown(records, defaultTopCategories),
			Section4: profile(fraud),
			Section5: comparison(records),
			Section6: geo.redFlags(defaultTopCategories),
			Section7: scatter(records, a.maxScatterPoints),
		},
		Map:      mapData,
		MapNames: mapNames,
		Tables: types.Tables{
			Table1: employmentShare(fraud, defaultTopCategories),
			Table2: a.engine.Table(fraud, legit),
		},
	}, nil
}
