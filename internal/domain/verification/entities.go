package verification

import (
	"errors"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingField    = errors.New("required field missing")
)

// DateLayout is the only accepted date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MaxDateDriftDays is how far submitted and extracted dates may drift apart
// before they count as a mismatch. Kept as a literal day count, not months.
const MaxDateDriftDays = 150

type Status string

const (
	StatusCurrentlyEmployed Status = "CurrentlyEmployed"
	StatusResigned          Status = "Resigned"
	StatusTerminated        Status = "Terminated"
)

var statusLabels = map[Status]string{
	StatusCurrentlyEmployed: "Currently Employed",
	StatusResigned:          "Resigned",
	StatusTerminated:        "Terminated",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Record is one employment entry, either submitted by the user or extracted
// from a document. Dates are kept as text so a malformed value can still be
// reconciled and reported.
type Record struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date,omitempty"`
	Status        Status `json:"status"`
	Rank          string `json:"rank"`
	Designation   string `json:"designation"`
	ServiceBranch string `json:"service_branch"`
}

// HasEndDate reports whether an end date is present at all (valid or not).
func (r Record) HasEndDate() bool { return r.EndDate != "" }

var (
	ValidRanks = []string{
		"1A", "1B", "1C", "1D",
		"2A", "2B", "2C", "2D",
		"3A", "3B", "3C", "3D",
		"4A", "4B", "4C", "4D",
	}
	ValidDesignations    = []string{"Manager", "Assistant Manager", "Deputy Manager", "Associate", "Analyst"}
	ValidServiceBranches = []string{"Operations", "Marketing", "Sales", "Product", "HR", "Finance", "Legal"}
)

var (
	rankSet        = toSet(ValidRanks)
	designationSet = toSet(ValidDesignations)
	branchSet      = toSet(ValidServiceBranches)
)

func toSet(vals []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

func IsValidRank(v string) bool {
	_, ok := rankSet[v]
	return ok
}

func IsValidDesignation(v string) bool {
	_, ok := designationSet[v]
	return ok
}

func IsValidServiceBranch(v string) bool {
	_, ok := branchSet[v]
	return ok
}

type Discrepancy string

const (
	EndDateProvidedForCurrentEmployment Discrepancy = "EndDateProvidedForCurrentEmployment"
	StartDateMismatch                   Discrepancy = "StartDateMismatch"
	EndDateMismatch                     Discrepancy = "EndDateMismatch"
	DateFormatError                     Discrepancy = "DateFormatError"
	InvalidRank                         Discrepancy = "InvalidRank"
	InvalidDesignation                  Discrepancy = "InvalidDesignation"
	InvalidServiceBranch                Discrepancy = "InvalidServiceBranch"
)

var discrepancyMessages = map[Discrepancy]string{
	EndDateProvidedForCurrentEmployment: "End date provided for currently employed status",
	StartDateMismatch:                   "Start Date mismatch beyond 5 months",
	EndDateMismatch:                     "End Date mismatch beyond 5 months",
	DateFormatError:                     "Date format error",
	InvalidRank:                         "Invalid rank",
	InvalidDesignation:                  "Invalid designation",
	InvalidServiceBranch:                "Invalid service branch",
}

func (d Discrepancy) Message() string {
	if m, ok := discrepancyMessages[d]; ok {
		return m
	}
	return string(d)
}

// Blocking discrepancies force DiscrepancyNotVerified.
func (d Discrepancy) Blocking() bool {
	switch d {
	case StartDateMismatch, EndDateMismatch, InvalidRank:
		return true
	}
	return false
}

type Verdict string

const (
	CompletelyVerified      Verdict = "CompletelyVerified"
	VerifiedWithDiscrepancy Verdict = "VerifiedWithDiscrepancy"
	DiscrepancyNotVerified  Verdict = "DiscrepancyNotVerified"
)

var verdictLabels = map[Verdict]string{
	CompletelyVerified:      "Completely Verified",
	VerifiedWithDiscrepancy: "Verified with Discrepancy",
	DiscrepancyNotVerified:  "Discrepancy Not Verified",
}

func (v Verdict) Label() string {
	if l, ok := verdictLabels[v]; ok {
		return l
	}
	return string(v)
}

type Result struct {
	Verdict       Verdict       `json:"verdict"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Messages returns the human readable discrepancy list, in rule order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		out = append(out, d.Message())
	}
	return out
}

