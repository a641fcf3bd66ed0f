package verification

import (
	"fmt"
	"time"
)

type rule func(submitted, extracted Record) []Discrepancy

// Evaluation order is part of the contract: discrepancies are reported in
// this order.
var rules = []rule{
	employmentStatusRule,
	dateToleranceRule,
	rankRule,
	designationRule,
	serviceBranchRule,
}

// Reconcile cross-checks a submitted record against the one extracted from
// the supporting document. Every rule runs; rule violations become
// discrepancies. An error is returned only when a start date is missing.
func Reconcile(submitted, extracted Record) (Result, error) {
	if submitted.StartDate == "" {
		return Result{}, fmt.Errorf("%w: submitted start_date", ErrMissingField)
	}
	if extracted.StartDate == "" {
		return Result{}, fmt.Errorf("%w: extracted start_date", ErrMissingField)
	}

	found := make([]Discrepancy, 0, len(rules))
	for _, r := range rules {
		found = append(found, r(submitted, extracted)...)
	}
	return Result{Verdict: verdictFor(found), Discrepancies: found}, nil
}

func verdictFor(found []Discrepancy) Verdict {
	if len(found) == 0 {
		return CompletelyVerified
	}
	for _, d := range found {
		if d.Blocking() {
			return DiscrepancyNotVerified
		}
	}
	return VerifiedWithDiscrepancy
}

func employmentStatusRule(submitted, extracted Record) []Discrepancy {
	if submitted.Status == StatusCurrentlyEmployed && extracted.HasEndDate() {
		return []Discrepancy{EndDateProvidedForCurrentEmployment}
	}
	return nil
}

// dateToleranceRule parses all dates up front; one bad date reports
// DateFormatError and skips both mismatch checks.
func dateToleranceRule(submitted, extracted Record) []Discrepancy {
	subStart, err1 := ParseDate(submitted.StartDate)
	extStart, err2 := ParseDate(extracted.StartDate)
	subEnd, err3 := parseOptional(submitted.EndDate)
	extEnd, err4 := parseOptional(extracted.EndDate)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return []Discrepancy{DateFormatError}
	}

	var out []Discrepancy
	if daysApart(subStart, extStart) > MaxDateDriftDays {
		out = append(out, StartDateMismatch)
	}
	if subEnd != nil && extEnd != nil && daysApart(*subEnd, *extEnd) > MaxDateDriftDays {
		out = append(out, EndDateMismatch)
	}
	return out
}

func rankRule(submitted, extracted Record) []Discrepancy {
	if !IsValidRank(submitted.Rank) || !IsValidRank(extracted.Rank) {
		return []Discrepancy{InvalidRank}
	}
	return nil
}

func designationRule(submitted, extracted Record) []Discrepancy {
	if !IsValidDesignation(submitted.Designation) || !IsValidDesignation(extracted.Designation) {
		return []Discrepancy{InvalidDesignation}
	}
	return nil
}

func serviceBranchRule(submitted, extracted Record) []Discrepancy {
	if !IsValidServiceBranch(submitted.ServiceBranch) || !IsValidServiceBranch(extracted.ServiceBranch) {
		return []Discrepancy{InvalidServiceBranch}
	}
	return nil
}

func parseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// daysApart is the absolute whole-day distance between two UTC dates.
func daysApart(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
