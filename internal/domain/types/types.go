// Package types contains the dashboard payload returned by /api/data.
package types

// Row is one table row: three display strings.
type Row = [3]string

// Payload is the full dashboard contract.
type Payload struct {
	Ranking  Ranking           `json:"ranking"`
	Charts   Charts            `json:"charts"`
	Map      map[string]int    `json:"map"`
	MapNames map[string]string `json:"map_names"`
	Tables   Tables            `json:"tables"`
}

// Ranking holds the most frequent fraudulent job titles.
type Ranking struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Charts groups the seven chart sections.
type Charts struct {
	Section1 Series         `json:"section1"`
	Section2 Series         `json:"section2"`
	Section3 Section3       `json:"section3"`
	Section4 Ratios         `json:"section4"`
	Section5 Section5       `json:"section5"`
	Section6 Section6       `json:"section6"`
	Section7 []ScatterPoint `json:"section7"`
}

// Series is a labelled count series.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Ratios is a labelled percentage series.
type Ratios struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Section3 is fraudulent (Main) vs legitimate (Sub) counts per industry group.
type Section3 struct {
	Labels []string `json:"labels"`
	Main   []int    `json:"main"`
	Sub    []int    `json:"sub"`
}

// Section5 is the company-logo cross-tab: ProdA counts postings with a logo,
// ProdB those without, each as [legitimate, fraudulent].
type Section5 struct {
	Labels []string `json:"labels"`
	ProdA  []int    `json:"prodA"`
	ProdB  []int    `json:"prodB"`
}

// Section6 stacks red-flag counts per country.
type Section6 struct {
	Labels   []string `json:"labels"`
	External []int    `json:"external"`
	Internal []int    `json:"internal"`
	Other    []int    `json:"other"`
}

// ScatterPoint is one employment type placed by logo rate (X) and
// screening-question rate (Y), both in percent.
type ScatterPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Label     string  `json:"label,omitempty"`
	Count     int     `json:"count,omitempty"`
	FraudRate float64 `json:"fraud_rate"`
}

// Tables holds the two three-column tables.
type Tables struct {
	Table1 []Row `json:"table1"`
	Table2 []Row `json:"table2"`
}

// EmptyPayload returns the payload for an empty source: every list empty and
// every map empty, never nil.
func EmptyPayload() *Payload {
	return &Payload{
		Ranking: Ranking{Labels: []string{}, Values: []int{}},
		Charts: Charts{
			Section1: Series{Labels: []string{}, Values: []int{}},
			Section2: Series{Labels: []string{}, Values: []int{}},
			Section3: Section3{Labels: []string{}, Main: []int{}, Sub: []int{}},
			Section4: Ratios{Labels: []string{}, Values: []float64{}},
			Section5: Section5{Labels: []string{}, ProdA: []int{}, ProdB: []int{}},
			Section6: Section6{Labels: []string{}, External: []int{}, Internal: []int{}, Other: []int{}},
			Section7: []ScatterPoint{},
		},
		Map:      map[string]int{},
		MapNames: map[string]string{},
		Tables:   Tables{Table1: []Row{}, Table2: []Row{}},
	}
}
