package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"verification-platform/internal/domain/verification"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  verification.RawRecord
		found int
	}{
		{
			name: "colon separated",
			text: PlaceholderDocument,
			want: verification.RawRecord{
				StartDate: "2023-01-01", EndDate: "2024-01-01", Status: "Resigned",
				Rank: "1A", Designation: "Manager", ServiceBranch: "Operations",
			},
			found: 6,
		},
		{
			name: "dash separator, odd case and spacing",
			text: "  START DATE - 2022-03-04\nservice   branch:   Human Resources  \r\nRANK-3d",
			want: verification.RawRecord{
				StartDate: "2022-03-04", ServiceBranch: "Human Resources", Rank: "3D",
			},
			found: 3,
		},
		{
			name: "closed-set values folded onto canonical spelling",
			text: "Rank: 2c\nDesignation: assistant  MANAGER\nService Branch: hr",
			want: verification.RawRecord{
				Rank: "2C", Designation: "Assistant Manager", ServiceBranch: "HR",
			},
			found: 3,
		},
		{
			name: "unknown values kept",
			text: "Rank: 9z\nDesignation: Chief Wizard",
			want: verification.RawRecord{Rank: "9z", Designation: "Chief Wizard"},
			found: 2,
		},
		{
			name:  "first occurrence wins",
			text:  "Rank: 1A\nRank: 4D",
			want:  verification.RawRecord{Rank: "1A"},
			found: 1,
		},
		{
			name:  "label must start the line",
			text:  "Your rank: 1A is noted",
			found: 0,
		},
		{
			name:  "empty end date",
			text:  "End Date:\nStatus: Currently Employed",
			want:  verification.RawRecord{Status: "Currently Employed"},
			found: 2,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, found := ParseFields(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, found)
		})
	}
}
