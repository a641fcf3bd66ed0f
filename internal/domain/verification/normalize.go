package verification

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RawRecord carries the six fields exactly as they came from a form or from
// OCR text, before any cleanup.
type RawRecord struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	Rank          string `json:"rank"`
	Designation   string `json:"designation"`
	ServiceBranch string `json:"service_branch"`
}

// IsEmpty reports whether no field carries a value.
func (r RawRecord) IsEmpty() bool {
	return strings.TrimSpace(r.StartDate+r.EndDate+r.Status+r.Rank+r.Designation+r.ServiceBranch) == ""
}

// placeholders that mean "no date" coming from upstream serializers
var absentDates = map[string]struct{}{
	"":     {},
	"none": {},
	"null": {},
	"nil":  {},
	"nat":  {},
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrMalformedRecord, s)
	}
	return t, nil
}

// ParseStatus maps an enum name or a human label onto a Status. Unknown input
// is returned as-is so the caller can still see what was given.
func ParseStatus(s string) Status {
	key := squash(s)
	for st, label := range statusLabels {
		if key == squash(string(st)) || key == squash(label) {
			return st
		}
	}
	return Status(strings.TrimSpace(s))
}

// Normalize shapes a raw record into a Record. Closed-set fields are only
// trimmed: membership is exact, so "1a" is not rank "1A". The record is always
// returned; the error (wrapping ErrMalformedRecord) lists the dates that do
// not parse.
func Normalize(raw RawRecord) (Record, error) {
	rec := Record{
		StartDate:     strings.TrimSpace(raw.StartDate),
		EndDate:       normalizeOptionalDate(raw.EndDate),
		Status:        ParseStatus(raw.Status),
		Rank:          strings.TrimSpace(raw.Rank),
		Designation:   strings.TrimSpace(raw.Designation),
		ServiceBranch: strings.TrimSpace(raw.ServiceBranch),
	}

	var errs []error
	if rec.StartDate != "" {
		if _, err := ParseDate(rec.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("start_date: %w", err))
		}
	}
	if rec.HasEndDate() {
		if _, err := ParseDate(rec.EndDate); err != nil {
			errs = append(errs, fmt.Errorf("end_date: %w", err))
		}
	}
	return rec, errors.Join(errs...)
}

func normalizeOptionalDate(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := absentDates[strings.ToLower(s)]; ok {
		return ""
	}
	return s
}

func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
