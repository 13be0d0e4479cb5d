package importer

import (
	"fmt"
	"time"
)

// Result is the outcome of one importer run. Every examined row ends up in
// exactly one of Imported, Skipped or Errors.
type Result struct {
	Name     string        `json:"importer"`
	Success  bool          `json:"success"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []string      `json:"errors"`
	Warnings []string      `json:"warnings"`
	Duration time.Duration `json:"duration_ns"`
}

func NewResult(name string) *Result {
	return &Result{Name: name, Errors: []string{}, Warnings: []string{}}
}

// Examined is the number of rows that reached a final outcome.
func (r *Result) Examined() int {
	return r.Imported + r.Skipped + len(r.Errors)
}

// AddError records a row or fetch failure, prefixed with key when known.
func (r *Result) AddError(key string, err error) {
	if key == "" {
		r.Errors = append(r.Errors, err.Error())
		return
	}
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", key, err))
}

func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge adds o's counters and messages to r.
func (r *Result) Merge(o *Result) {
	r.Imported += o.Imported
	r.Skipped += o.Skipped
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

func (r *Result) finish(d time.Duration) *Result {
	r.Success = len(r.Errors) == 0
	r.Duration = d
	return r
}
