package probe

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
)

// pcgStream is the fixed PCG increment paired with the user seed.
const pcgStream = 0x9e3779b97f4a7c15

// Signal probabilities for generated postings. Fraudulent postings lean
// remote, logo-less and question-less.
const (
	fraudRemote    = 0.35
	fraudLogo      = 0.30
	fraudQuestions = 0.25
	legitRemote    = 0.05
	legitLogo      = 0.85
	legitQuestions = 0.55
	balancedShare  = 0.5
	refLength      = 8
)

var (
	titles = []string{
		"Data Entry Clerk", "Customer Service Representative", "Administrative Assistant",
		"Software Engineer", "Sales Associate", "Account Manager", "Home Based Payroll Typist",
		"Marketing Coordinator", "Registered Nurse", "Cruise Staff",
	}
	employmentTypes = []string{"Full-time", "Part-time", "Contract", "Temporary", "Other", ""}
	industryGroups  = []string{"IT", "Finance", "Health Care", "Marketing", "Oil & Energy", "Retail", "Education", ""}
	eduLevels       = []string{"Bachelor's Degree", "High School or equivalent", "Master's Degree", "Associate Degree", ""}
	countryCodes    = []string{"US", "US", "US", "GB", "GB", "DE", "CA", "AU", "IN", "NZ", "FR", "MY", "", "UNSPECIFIED"}
)

// runNamespace scopes the deterministic run and reference ids.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("fraudboard.probe"))

// RunID returns the deterministic id of a seed run.
func RunID(seed uint64) string {
	return uuid.NewSHA1(runNamespace, []byte(strconv.FormatUint(seed, 10))).String()
}

// Generate returns count synthetic postings. Output depends only on the
// arguments; ratio is clamped to [0, 1].
func Generate(count int, ratio float64, seed uint64) []model.Record {
	ratio = min(max(ratio, 0), 1)
	r := rand.New(rand.NewPCG(seed, pcgStream))
	records := make([]model.Record, 0, max(count, 0))
	for i := 0; i < count; i++ {
		records = append(records, generateOne(r, ratio, seed, i))
	}
	return records
}

func generateOne(r *rand.Rand, ratio float64, seed uint64, index int) model.Record {
	fraudulent := r.Float64() < ratio
	remote, logo, questions := legitRemote, legitLogo, legitQuestions
	title := pick(r, titles)
	if fraudulent {
		remote, logo, questions = fraudRemote, fraudLogo, fraudQuestions
		// fraudulent titles concentrate on the first half of the pool
		title = titles[r.IntN(len(titles)/2)]
	} else {
		title += " (" + reference(seed, index) + ")"
	}
	return model.Record{
		Title:             title,
		Telecommuting:     r.Float64() < remote,
		HasCompanyLogo:    r.Float64() < logo,
		HasQuestions:      r.Float64() < questions,
		EmploymentType:    model.Category(pick(r, employmentTypes)),
		Fraudulent:        fraudulent,
		InBalancedDataset: r.Float64() < balancedShare,
		Country:           pick(r, countryCodes),
		IndustryGroup:     model.Category(pick(r, industryGroups)),
		EduLevel:          model.Category(pick(r, eduLevels)),
	}
}

// reference derives a short posting reference from the seed and index.
func reference(seed uint64, index int) string {
	id := uuid.NewSHA1(runNamespace, []byte(strconv.FormatUint(seed, 10)+"/"+strconv.Itoa(index)))
	return id.String()[:refLength]
}

func pick(r *rand.Rand, values []string) string {
	return values[r.IntN(len(values))]
}
