package probe

import "time"

// SeedConfig holds configuration for the seed command.
type SeedConfig struct {
	Count      int     // Number of postings to generate
	FraudRatio float64 // Share of generated postings marked fraudulent
	Seed       uint64  // Generator seed; equal seeds give equal postings
	BatchSize  int     // Postings handed to Insert per call
}

// VerifyConfig holds configuration for the verify command.
type VerifyConfig struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
}

// SeedStats summarises a seed run.
type SeedStats struct {
	RunID      string
	Generated  int
	Fraudulent int
	Inserted   int
	Duration   time.Duration
}

// Report summarises a verify run.
type Report struct {
	Healthy    bool
	Rows       int
	Fraudulent int
	Countries  int
	LiftRows   int
	Violations []string
	Duration   time.Duration
}

// healthResponse mirrors the body of GET /health.
type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
