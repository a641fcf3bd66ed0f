package verification

import (
	"verification-platform/internal/domain/verification"
)

type VerifyInput struct {
	Submitted verification.RawRecord `json:"submitted"`
	Extracted verification.RawRecord `json:"extracted"`
}

type ResultDTO struct {
	Verdict       verification.Verdict       `json:"verdict"`
	VerdictLabel  string                     `json:"verdict_label"`
	Discrepancies []verification.Discrepancy `json:"discrepancies"`
	Messages      []string                   `json:"messages"`
}

type VerifyDTO struct {
	Submitted verification.Record `json:"submitted"`
	Extracted verification.Record `json:"extracted"`
	Result    ResultDTO           `json:"result"`
}

func NewResultDTO(r verification.Result) ResultDTO {
	ds := r.Discrepancies
	if ds == nil {
		ds = []verification.Discrepancy{}
	}
	return ResultDTO{
		Verdict:       r.Verdict,
		VerdictLabel:  r.Verdict.Label(),
		Discrepancies: ds,
		Messages:      r.Messages(),
	}
}
