package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordFromRow builds a Record from a column->value row as produced by a SQL
// scan into []any. Unparseable flags become false and blank categories Unknown.
func RecordFromRow(row map[string]any) Record {
	return Record{
		Title:             Category(row[ColTitle]),
		Telecommuting:     Flag(row[ColTelecommuting]),
		HasCompanyLogo:    Flag(row[ColHasCompanyLogo]),
		HasQuestions:      Flag(row[ColHasQuestions]),
		EmploymentType:    Category(row[ColEmploymentType]),
		Fraudulent:        Flag(row[ColFraudulent]),
		InBalancedDataset: Flag(row[ColInBalancedDataset]),
		Country:           Text(row[ColCountry]),
		IndustryGroup:     Category(row[ColIndustryGroup]),
		EduLevel:          Category(row[ColEduLevel]),
	}
}

// Flag coerces a boolean-like value; anything missing or unparseable is false.
func Flag(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case []byte:
		return flagString(string(t))
	case string:
		return flagString(t)
	default:
		return flagString(fmt.Sprint(t))
	}
}

func flagString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "0", "false", "no", "n", "f", "nan", "none", "null":
		return false
	case "1", "true", "yes", "y", "t":
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f != 0
}

// Text returns the trimmed string form of v, or "" for nil.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Category returns Text(v), defaulting blank values to Unknown.
func Category(v any) string {
	s := Text(v)
	if s == "" {
		return Unknown
	}
	return s
}
