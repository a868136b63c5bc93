package tokenxml

import (
	"fmt"
	"strings"
	"time"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

// Result describes one Update run.
type Result struct {
	*tokens.Result

	RunID       string
	NewFile     string
	UpdatedFile string
	DryRun      bool
	Elapsed     time.Duration

	// FetchErr is set when the upstream fetch stopped early and the run
	// used partial results.
	FetchErr error
}

// Summary renders the operator summary for the run's output files. A dry
// run names the files it would have written.
func (r *Result) Summary() string {
	if !r.DryRun {
		return r.Result.Summary(r.NewFile, r.UpdatedFile)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dry run: would create %d new token entries in %s\n", r.NewCount, r.NewFile)
	fmt.Fprintf(&b, "Dry run: would append set lines for %d reprinted tokens in %s\n", r.ReprintCount, r.UpdatedFile)
	b.WriteString("No files were written.\n")
	return b.String()
}

// Partial reports whether the upstream results were incomplete.
func (r *Result) Partial() bool {
	return r.FetchErr != nil
}
