package probe

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// Wire payload limits checked by Verify.
const (
	maxRanking  = 5
	maxTopN     = 6
	maxMap      = 12
	minLiftRank = 1.0
	maxLiftRank = 5.0
)

var iso3Re = regexp.MustCompile(`^[A-Z]{3}$`)

// Verify checks the structural invariants of a dashboard payload and
// returns every violation joined, each wrapping ErrInvariant.
func Verify(p *types.Payload) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}
	c := p.Charts

	if len(p.Ranking.Labels) != len(p.Ranking.Values) || len(p.Ranking.Labels) > maxRanking {
		add("ranking has %d labels and %d values", len(p.Ranking.Labels), len(p.Ranking.Values))
	}
	if n := len(c.Section1.Values); (n != 0 && n != 2) || len(c.Section1.Labels) != n {
		add("section1 must be empty or two buckets, got %d labels and %d values", len(c.Section1.Labels), n)
	}
	if len(c.Section2.Labels) != len(c.Section2.Values) || len(c.Section2.Labels) > maxTopN {
		add("section2 has %d labels and %d values", len(c.Section2.Labels), len(c.Section2.Values))
	}
	if n := len(c.Section3.Labels); len(c.Section3.Main) != n || len(c.Section3.Sub) != n || n > maxTopN {
		add("section3 arity mismatch: %d labels, %d main, %d sub", n, len(c.Section3.Main), len(c.Section3.Sub))
	}
	if len(c.Section4.Labels) != len(c.Section4.Values) {
		add("section4 has %d labels and %d values", len(c.Section4.Labels), len(c.Section4.Values))
	}
	for i, v := range c.Section4.Values {
		if v < 0 || v > 100 {
			add("section4 value %d is %v, outside [0, 100]", i, v)
		}
	}
	if n := len(c.Section5.Labels); len(c.Section5.ProdA) != n || len(c.Section5.ProdB) != n {
		add("section5 arity mismatch: %d labels, %d prodA, %d prodB", n, len(c.Section5.ProdA), len(c.Section5.ProdB))
	}
	if total, cross := sumInts(c.Section1.Values), sumInts(c.Section5.ProdA)+sumInts(c.Section5.ProdB); total != cross {
		add("section1 total %d differs from section5 total %d", total, cross)
	}
	s6 := c.Section6
	if n := len(s6.Labels); len(s6.External) != n || len(s6.Internal) != n || len(s6.Other) != n || n > maxTopN {
		add("section6 arity mismatch: %d labels, %d/%d/%d series", n, len(s6.External), len(s6.Internal), len(s6.Other))
	}

	if len(p.Map) > maxMap {
		add("map has %d countries, more than %d", len(p.Map), maxMap)
	}
	for code := range p.Map {
		if !iso3Re.MatchString(code) {
			add("map key %q is not an alpha-3 code", code)
		}
		if _, ok := p.MapNames[code]; !ok {
			add("map key %q has no display name", code)
		}
	}

	if len(p.Tables.Table1) > maxTopN {
		add("table1 has %d rows, more than %d", len(p.Tables.Table1), maxTopN)
	}
	if len(p.Tables.Table2) > maxTopN {
		add("table2 has %d rows, more than %d", len(p.Tables.Table2), maxTopN)
	}
	for _, row := range p.Tables.Table2 {
		score, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			add("table2 row %q has a non-numeric score %q", row[0], row[2])
			continue
		}
		if score < minLiftRank || score > maxLiftRank {
			add("table2 row %q score %v outside [1, 5]", row[0], score)
		}
	}

	return errors.Join(errs...)
}

func sumInts(vs []int) int {
	total := 0
	for _, v := range vs {
		total += v
	}
	return total
}
