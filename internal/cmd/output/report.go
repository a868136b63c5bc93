package output

import (
	"strconv"

	tokenxml "github.com/SlightlyCircuitous/update-token-xml"
)

// Report is the serializable view of an update run.
type Report struct {
	RunID       string   `json:"run_id" yaml:"run_id"`
	Set         string   `json:"set" yaml:"set"`
	NewTokens   int      `json:"new_tokens" yaml:"new_tokens"`
	Reprints    int      `json:"reprints" yaml:"reprints"`
	DoubleFaced int      `json:"double_faced" yaml:"double_faced"`
	Skipped     int      `json:"skipped" yaml:"skipped"`
	NewFile     string   `json:"new_file" yaml:"new_file"`
	UpdatedFile string   `json:"updated_file" yaml:"updated_file"`
	DryRun      bool     `json:"dry_run" yaml:"dry_run"`
	Partial     bool     `json:"partial" yaml:"partial"`
	Elapsed     string   `json:"elapsed" yaml:"elapsed"`
	Created     []string `json:"created,omitempty" yaml:"created,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	summary string
}

// NewReport builds a Report from an update result.
func NewReport(r *tokenxml.Result) *Report {
	rep := &Report{
		RunID:       r.RunID,
		Set:         r.SetCode,
		NewTokens:   r.NewCount,
		Reprints:    r.ReprintCount,
		DoubleFaced: r.DoubleFacedCount,
		Skipped:     r.SkippedCount,
		NewFile:     r.NewFile,
		UpdatedFile: r.UpdatedFile,
		DryRun:      r.DryRun,
		Partial:     r.Partial(),
		Elapsed:     r.Elapsed.String(),
		summary:     r.Summary(),
	}
	for _, o := range r.Outcomes {
		if o.Created != nil {
			rep.Created = append(rep.Created, o.Created.Name)
		}
	}
	for _, d := range r.Diagnostics {
		rep.Diagnostics = append(rep.Diagnostics, d.Error())
	}
	if r.FetchErr != nil {
		rep.Diagnostics = append(rep.Diagnostics, r.FetchErr.Error())
	}
	return rep
}

// String returns the operator summary.
func (r *Report) String() string {
	return r.summary
}

// TableData lays the report out as property/value rows.
func (r *Report) TableData() Data {
	rows := [][]string{
		{"Set", r.Set},
		{"New Tokens", strconv.Itoa(r.NewTokens)},
		{"Reprints", strconv.Itoa(r.Reprints)},
		{"Double Faced", strconv.Itoa(r.DoubleFaced)},
		{"Skipped", strconv.Itoa(r.Skipped)},
		{"New File", r.NewFile},
		{"Updated File", r.UpdatedFile},
		{"Dry Run", strconv.FormatBool(r.DryRun)},
		{"Partial", strconv.FormatBool(r.Partial)},
	}
	for _, name := range r.Created {
		rows = append(rows, []string{"Created", name})
	}
	for _, d := range r.Diagnostics {
		rows = append(rows, []string{"Diagnostic", d})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}
