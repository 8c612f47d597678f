// Package country normalizes raw country codes for the map and red-flag views.
package country

import (
	"strings"

	"github.com/biter777/countries"
)

// Raw values that mean "no country recorded".
var sentinels = map[string]struct{}{
	"":            {},
	"UNSPECIFIED": {},
	"NAN":         {},
	"NONE":        {},
	"UNKNOWN":     {},
}

// ToAlpha3 resolves an ISO 3166-1 alpha-2 code to alpha-3.
// A valid alpha-3 code maps to itself. Blank values, sentinels and codes the
// ISO database does not know report ok=false.
func ToAlpha3(code string) (string, bool) {
	c, ok := lookup(code)
	if !ok {
		return "", false
	}
	return c.Alpha3(), true
}

// Resolved reports whether code maps to an alpha-3 country.
func Resolved(code string) bool {
	_, ok := lookup(code)
	return ok
}

// Name returns the English display name for an alpha-3 code, or the code
// itself when it is not found.
func Name(iso3 string) string {
	c, ok := lookup(iso3)
	if !ok {
		return iso3
	}
	name := c.String()
	if name == "" || strings.EqualFold(name, "unknown") {
		return iso3
	}
	return name
}

func lookup(code string) (countries.CountryCode, bool) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := sentinels[s]; ok {
		return countries.Unknown, false
	}
	if len(s) != 2 && len(s) != 3 {
		return countries.Unknown, false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return countries.Unknown, false
		}
	}
	c := countries.ByName(s)
	if c == countries.Unknown || !c.IsValid() {
		return countries.Unknown, false
	}
	// ByName also matches names; require the input to be one of the codes.
	if s != c.Alpha2() && s != c.Alpha3() {
		return countries.Unknown, false
	}
	return c, true
}
