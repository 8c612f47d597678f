// Package model contains domain models passed between layers.
package model

// Unknown is the sentinel bucket for missing categorical values.
const Unknown = "Unknown"

// Column names of the recruitment table, exact and case-sensitive.
const (
	ColTitle             = "title"
	ColTelecommuting     = "telecommuting"
	ColHasCompanyLogo    = "has_company_logo"
	ColHasQuestions      = "has_questions"
	ColEmploymentType    = "employment_type"
	ColFraudulent        = "fraudulent"
	ColInBalancedDataset = "in_balanced_dataset"
	ColCountry           = "country"
	ColIndustryGroup     = "industry_group"
	ColEduLevel          = "edu_level"
)

// RequiredColumns lists every column the aggregation reads, in query order.
var RequiredColumns = []string{
	ColTitle,
	ColTelecommuting,
	ColHasCompanyLogo,
	ColHasQuestions,
	ColEmploymentType,
	ColFraudulent,
	ColInBalancedDataset,
	ColCountry,
	ColIndustryGroup,
	ColEduLevel,
}

// Record is one job posting as read from the store.
// Boolean-like columns are already coerced (missing => false) and
// categorical columns already defaulted to Unknown.
type Record struct {
	Title             string `db:"title" json:"title"`
	Telecommuting     bool   `db:"telecommuting" json:"telecommuting"`
	HasCompanyLogo    bool   `db:"has_company_logo" json:"has_company_logo"`
	HasQuestions      bool   `db:"has_questions" json:"has_questions"`
	EmploymentType    string `db:"employment_type" json:"employment_type"`
	Fraudulent        bool   `db:"fraudulent" json:"fraudulent"`
	InBalancedDataset bool   `db:"in_balanced_dataset" json:"in_balanced_dataset"`
	Country           string `db:"country" json:"country"` // raw ISO alpha-2, may be blank or a sentinel
	IndustryGroup     string `db:"industry_group" json:"industry_group"`
	EduLevel          string `db:"edu_level" json:"edu_level"`
}

// Values returns the record in RequiredColumns order, with booleans as 0/1.
func (r Record) Values() []any {
	return []any{
		r.Title,
		boolToInt(r.Telecommuting),
		boolToInt(r.HasCompanyLogo),
		boolToInt(r.HasQuestions),
		r.EmploymentType,
		boolToInt(r.Fraudulent),
		boolToInt(r.InBalancedDataset),
		r.Country,
		r.IndustryGroup,
		r.EduLevel,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Table is a fetched record set together with the columns the source reported.
type Table struct {
	Columns []string
	Records []Record
}

// NewTable builds a Table that carries the full required schema.
func NewTable(records []Record) Table {
	cols := make([]string, len(RequiredColumns))
	copy(cols, RequiredColumns)
	return Table{Columns: cols, Records: records}
}

// CheckColumns returns a *SchemaError for the first required column missing from cols.
func CheckColumns(cols []string) error {
	present := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		present[c] = struct{}{}
	}
	for _, want := range RequiredColumns {
		if _, ok := present[want]; !ok {
			return &SchemaError{Field: want}
		}
	}
	return nil
}

// Split partitions records into the fraudulent and legitimate subsets.
func Split(records []Record) (fraud, legit []Record) {
	for _, r := range records {
		if r.Fraudulent {
			fraud = append(fraud, r)
		} else {
			legit = append(legit, r)
		}
	}
	return fraud, legit
}
