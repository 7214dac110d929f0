// internal/assistant/entities_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"enrollment-workers/internal/models"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Entities
	}{
		{
			name: "everything",
			text: "Reach me at 312-555-0147 or jane.doe@example.com about the $1,250 collection from 3/15/2024, asap",
			want: models.Entities{
				Phones:      []string{"312-555-0147"},
				Emails:      []string{"jane.doe@example.com"},
				Amounts:     []string{"1250"},
				Dates:       []string{"3/15/2024"},
				AccountType: "collection",
				Timeframe:   "asap",
			},
		},
		{
			name: "last account type in list order wins",
			text: "Tomorrow works. I have a mortgage and a loan",
			want: models.Entities{AccountType: "mortgage", Timeframe: "Tomorrow"},
		},
		{
			name: "iso dates and several amounts",
			text: "paid $40 on 2024-01-02 and $1,000,000 later",
			want: models.Entities{Amounts: []string{"40", "1000000"}, Dates: []string{"2024-01-02"}},
		},
		{
			name: "dotted phone",
			text: "312.555.0147",
			want: models.Entities{Phones: []string{"312.555.0147"}},
		},
		{
			name: "nothing",
			text: "hello",
			want: models.Entities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, ExtractEntities("hello").IsEmpty())
}
