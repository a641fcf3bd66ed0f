package ocr

import (
	"regexp"
	"strings"

	"verification-platform/internal/domain/verification"
)

// "Label: value" or "Label - value", one per line, any case.
var reField = regexp.MustCompile(`(?im)^[ \t]*(start[ \t]*date|end[ \t]*date|status|rank|designation|service[ \t]*branch)[ \t]*[:\-][ \t]*(.*?)[ \t]*$`)

// ParseFields maps recognized text onto the six record fields. The first
// occurrence of a label wins. found reports how many labels were seen.
// Recognition noise in closed-set values (case, doubled spaces) is folded onto
// the canonical spelling here; form input never goes through this path.
func ParseFields(text string) (raw verification.RawRecord, found int) {
	seen := map[string]bool{}
	for _, m := range reField.FindAllStringSubmatch(text, -1) {
		label := strings.ToLower(strings.Join(strings.Fields(m[1]), ""))
		if seen[label] {
			continue
		}
		seen[label] = true
		found++

		v := strings.TrimSpace(m[2])
		switch label {
		case "startdate":
			raw.StartDate = v
		case "enddate":
			raw.EndDate = v
		case "status":
			raw.Status = v
		case "rank":
			raw.Rank = fold(v, verification.ValidRanks)
		case "designation":
			raw.Designation = fold(v, verification.ValidDesignations)
		case "servicebranch":
			raw.ServiceBranch = fold(v, verification.ValidServiceBranches)
		}
	}
	return raw, found
}

func fold(v string, allowed []string) string {
	v = strings.Join(strings.Fields(v), " ")
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return v
}
