package aggregate

import (
	"github.com/slen516-afk/fraudboard/internal/domain/country"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// geo holds records whose country resolved to alpha-3, grouped by code.
// Unresolved countries are dropped before any ranking.
type geo struct {
	counts   *counter
	remote   *counter
	noLogo   *counter
	noQuests *counter
}

func newGeo(records []model.Record) *geo {
	g := &geo{
		counts:   newCounter(),
		remote:   newCounter(),
		noLogo:   newCounter(),
		noQuests: newCounter(),
	}
	for _, r := range records {
		iso3, ok := country.ToAlpha3(r.Country)
		if !ok {
			continue
		}
		g.counts.add(iso3)
		if r.Telecommuting {
			g.remote.add(iso3)
		}
		if !r.HasCompanyLogo {
			g.noLogo.add(iso3)
		}
		if !r.HasQuestions {
			g.noQuests.add(iso3)
		}
	}
	return g
}

// redFlags is section6: remote, no-logo and no-questions counts for the
// top n countries.
func (g *geo) redFlags(n int) types.Section6 {
	out := types.Section6{Labels: []string{}, External: []int{}, Internal: []int{}, Other: []int{}}
	for _, e := range g.counts.top(n) {
		out.Labels = append(out.Labels, e.key)
		out.External = append(out.External, g.remote.get(e.key))
		out.Internal = append(out.Internal, g.noLogo.get(e.key))
		out.Other = append(out.Other, g.noQuests.get(e.key))
	}
	return out
}

// mapSection returns the top n countries by count and their display names.
func (g *geo) mapSection(n int) (map[string]int, map[string]string) {
	top := g.counts.top(n)
	counts := make(map[string]int, len(top))
	names := make(map[string]string, len(top))
	for _, e := range top {
		counts[e.key] = e.n
		names[e.key] = country.Name(e.key)
	}
	return counts, names
}
