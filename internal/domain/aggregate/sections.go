package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// Section labels.
var (
	compositionLabels = []string{"Legitimate", "Fraudulent"}
	comparisonLabels  = []string{"Legitimate", "Fraudulent"}
)

// profilePredicates are evaluated over the fraudulent subset for section4.
var profilePredicates = []struct {
	label string
	match func(model.Record) bool
}{
	{"Remote", func(r model.Record) bool { return r.Telecommuting }},
	{"No company logo", func(r model.Record) bool { return !r.HasCompanyLogo }},
	{"No screening questions", func(r model.Record) bool { return !r.HasQuestions }},
	{"Employment type unknown", func(r model.Record) bool { return r.EmploymentType == model.Unknown }},
	{"Education level unknown", func(r model.Record) bool { return r.EduLevel == model.Unknown }},
}

func ranking(fraud []model.Record, n int) types.Ranking {
	c := newCounter()
	for _, r := range fraud {
		c.add(r.Title)
	}
	out := types.Ranking{Labels: []string{}, Values: []int{}}
	for _, e := range c.top(n) {
		out.Labels = append(out.Labels, displayTitle(e.key))
		out.Values = append(out.Values, e.n)
	}
	return out
}

// displayTitle truncates long titles to titleDisplayRunes runes plus an ellipsis.
func displayTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleDisplayRunes {
		return title
	}
	return string(runes[:titleDisplayRunes]) + ellipsis
}

func composition(legit, fraud int) types.Series {
	return types.Series{
		Labels: append([]string(nil), compositionLabels...),
		Values: []int{legit, fraud},
	}
}

func trend(records []model.Record, n int) types.Series {
	c := newCounter()
	for _, r := range records {
		c.add(r.EmploymentType)
	}
	out := types.Series{Labels: []string{}, Values: []int{}}
	for _, e := range c.top(n) {
		out.Labels = append(out.Labels, e.key)
		out.Values = append(out.Values, e.n)
	}
	return out
}

func breakdown(records []model.Record, n int) types.Section3 {
	all, fraud := newCounter(), newCounter()
	for _, r := range records {
		all.add(r.IndustryGroup)
		if r.Fraudulent {
			fraud.add(r.IndustryGroup)
		}
	}
	out := types.Section3{Labels: []string{}, Main: []int{}, Sub: []int{}}
	for _, e := range all.top(n) {
		f := fraud.get(e.key)
		out.Labels = append(out.Labels, e.key)
		out.Main = append(out.Main, f)
		out.Sub = append(out.Sub, e.n-f)
	}
	return out
}

func profile(fraud []model.Record) types.Ratios {
	out := types.Ratios{
		Labels: make([]string, 0, len(profilePredicates)),
		Values: make([]float64, 0, len(profilePredicates)),
	}
	for _, p := range profilePredicates {
		hits := 0
		for _, r := range fraud {
			if p.match(r) {
				hits++
			}
		}
		out.Labels = append(out.Labels, p.label)
		out.Values = append(out.Values, round(percent(hits, len(fraud)), ratePlaces))
	}
	return out
}

// comparison is the logo x fraud cross-tab: ProdA holds postings with a
// logo, ProdB those without, each as [legitimate, fraudulent].
func comparison(records []model.Record) types.Section5 {
	withLogo, noLogo := []int{0, 0}, []int{0, 0}
	for _, r := range records {
		i := 0
		if r.Fraudulent {
			i = 1
		}
		if r.HasCompanyLogo {
			withLogo[i]++
		} else {
			noLogo[i]++
		}
	}
	return types.Section5{
		Labels: append([]string(nil), comparisonLabels...),
		ProdA:  withLogo,
		ProdB:  noLogo,
	}
}

type scatterGroup struct {
	label     string
	count     int
	logo      int
	questions int
	fraud     int
}

func scatter(records []model.Record, limit int) []types.ScatterPoint {
	groups := make(map[string]*scatterGroup)
	var order []*scatterGroup
	for _, r := range records {
		g, ok := groups[r.EmploymentType]
		if !ok {
			g = &scatterGroup{label: r.EmploymentType}
			groups[r.EmploymentType] = g
			order = append(order, g)
		}
		g.count++
		if r.HasCompanyLogo {
			g.logo++
		}
		if r.HasQuestions {
			g.questions++
		}
		if r.Fraudulent {
			g.fraud++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].label < order[j].label
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	points := make([]types.ScatterPoint, 0, len(order))
	for _, g := range order {
		points = append(points, types.ScatterPoint{
			X:         round(percent(g.logo, g.count), ratePlaces),
			Y:         round(percent(g.questions, g.count), ratePlaces),
			Label:     g.label,
			Count:     g.count,
			FraudRate: round(percent(g.fraud, g.count), ratePlaces),
		})
	}
	return points
}

// employmentShare ranks employment types among fraudulent postings, each
// with its share of the listed total.
func employmentShare(fraud []model.Record, n int) []types.Row {
	c := newCounter()
	for _, r := range fraud {
		c.add(r.EmploymentType)
	}
	top := c.top(n)
	total := 0
	for _, e := range top {
		total += e.n
	}
	rows := make([]types.Row, 0, len(top))
	for _, e := range top {
		share := round(percent(e.n, total), sharePlaces)
		rows = append(rows, types.Row{e.key, strconv.Itoa(e.n), fmt.Sprintf("%.1f%%", share)})
	}
	return rows
}
