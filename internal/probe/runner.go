package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slen516-afk/fraudboard/internal/domain/types"
	"github.com/slen516-afk/fraudboard/pkg/logger"
)

// RunVerify checks service health, fetches the dashboard payload and
// verifies it. A summary is written to out. Invariant violations are
// listed in the report and returned as an error wrapping ErrInvariant.
func RunVerify(ctx context.Context, cfg VerifyConfig, out io.Writer) (*Report, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	}
	start := time.Now()
	report := &Report{}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	logger.Get().Info(ctx, "verifying dashboard service",
		logger.String("baseURL", cfg.BaseURL),
		logger.Duration("timeout", cfg.Timeout),
	)

	// Step 1: Check service health
	var health healthResponse
	if _, err := client.getJSON(ctx, "/health", http.StatusOK, &health); err != nil {
		return report, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if !health.OK {
		return report, fmt.Errorf("%w: %s", ErrUnhealthy, health.Error)
	}
	report.Healthy = true

	// Step 2: Fetch the payload
	var payload types.Payload
	if _, err := client.getJSON(ctx, "/api/data", http.StatusOK, &payload); err != nil {
		return report, err
	}
	if len(payload.Charts.Section1.Values) == 2 {
		report.Rows = payload.Charts.Section1.Values[0] + payload.Charts.Section1.Values[1]
		report.Fraudulent = payload.Charts.Section1.Values[1]
	}
	report.Countries = len(payload.Map)
	report.LiftRows = len(payload.Tables.Table2)

	// Step 3: Verify invariants
	verr := Verify(&payload)
	if verr != nil {
		report.Violations = strings.Split(verr.Error(), "\n")
	}
	report.Duration = time.Since(start)

	writeReport(out, report)
	return report, verr
}

func writeReport(out io.Writer, r *Report) {
	fmt.Fprintf(out, `Dashboard verification:
   Healthy:    %t
   Rows:       %d
   Fraudulent: %d
   Countries:  %d
   Lift rows:  %d
   Duration:   %s
`, r.Healthy, r.Rows, r.Fraudulent, r.Countries, r.LiftRows, r.Duration.Round(time.Millisecond))
	if len(r.Violations) == 0 {
		fmt.Fprintln(out, "All invariants hold")
		return
	}
	fmt.Fprintf(out, "%d violation(s):\n", len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(out, "   - %s\n", v)
	}
}

// IsViolation reports whether err came from a failed invariant check.
func IsViolation(err error) bool {
	return errors.Is(err, ErrInvariant)
}
