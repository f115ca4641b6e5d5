package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "valid local safaricom number",
			input:    "0712345678",
			expected: "254712345678",
		},
		{
			name:     "valid local airtel 01 number",
			input:    "0112345678",
			expected: "254112345678",
		},
		{
			name:     "valid international number",
			input:    "254712345678",
			expected: "254712345678",
		},
		{
			name:     "number with plus prefix",
			input:    "+254712345678",
			expected: "254712345678",
		},
		{
			name:     "number with spaces and dashes",
			input:    "0712 345-678",
			expected: "254712345678",
		},
		{
			name:    "too short",
			input:   "071234567",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "07123456789",
			wantErr: true,
		},
		{
			name:     "local number on any operator prefix",
			input:    "0812345678",
			expected: "254812345678",
		},
		{
			name:     "local 09 number",
			input:    "0912345678",
			expected: "254912345678",
		},
		{
			name:     "international number on any operator prefix",
			input:    "254812345678",
			expected: "254812345678",
		},
		{
			name:    "non numeric",
			input:   "07abc45678",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "local form",
			input:    "0712345678",
			expected: "254712345678",
		},
		{
			name:     "already international",
			input:    "254712345678",
			expected: "254712345678",
		},
		{
			name:     "bare subscriber number",
			input:    "712345678",
			expected: "254712345678",
		},
		{
			name:     "plus prefix stripped",
			input:    "+254712345678",
			expected: "254712345678",
		},
		{
			name:     "bare 8 prefix subscriber number",
			input:    "812345678",
			expected: "254812345678",
		},
		{
			name:     "any other shape gets country code prepended",
			input:    "12345",
			expected: "25412345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPhoneNumber(tt.input))
		})
	}
}
