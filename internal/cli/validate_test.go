package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"alice.smith@mail.co.uk", true},
		{"notanemail", false},
		{"missing@dot", false},
		{"@example.com", false},
		{"user@.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, validEmail(tt.email))
		})
	}
}
