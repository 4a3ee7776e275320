package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Description string    `validate:"required,min=10"`
	DueDate     time.Time `validate:"required"`
	Email       string    `validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      sample
		wantFields []string
		wantTypes  []ValidationErrorType
	}{
		{
			name:  "valid",
			input: sample{Description: "Write the quarterly report", DueDate: due},
		},
		{
			name:       "empty email is allowed but zero date is not",
			input:      sample{Description: "Write the quarterly report"},
			wantFields: []string{"DueDate"},
			wantTypes:  []ValidationErrorType{ErrorTypeRequired},
		},
		{
			name:       "short description and malformed email",
			input:      sample{Description: "too short", DueDate: due, Email: "not-an-address"},
			wantFields: []string{"Description", "Email"},
			wantTypes:  []ValidationErrorType{ErrorTypeInvalidLength, ErrorTypeInvalidFormat},
		},
		{
			name:       "missing description",
			input:      sample{DueDate: due},
			wantFields: []string{"Description"},
			wantTypes:  []ValidationErrorType{ErrorTypeRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := Struct(tt.input)
			if tt.wantFields == nil {
				assert.Nil(t, ve)
				return
			}

			require.NotNil(t, ve)
			assert.Equal(t, tt.wantFields, ve.Fields())
			for i, fe := range ve.Errors {
				assert.Equal(t, tt.wantTypes[i], fe.Type)
				assert.NotEmpty(t, fe.Message)
			}
		})
	}
}

func TestStruct_MinCountsRunes(t *testing.T) {
	// ten runes, more than ten bytes
	ve := Struct(sample{Description: "ÄÖÜäöüßéèê", DueDate: time.Now()})
	assert.Nil(t, ve)
}
