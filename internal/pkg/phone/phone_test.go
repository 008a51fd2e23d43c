package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"+2348000000000", true},
		{"+234 800 000 0000", true},
		{"+1-415-555-0100", true},
		{"+12345678", true},
		{"2348000000000", false}, // missing prefix
		{"+234800", false},       // too short
		{"+1234567890123456", false},
		{"+234800000000a", false},
		{"", false},
		{"+", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Valid(c.in), "input %q", c.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "+2348000000000", Normalize("+234 800-000 0000"))
	assert.Equal(t, "+2348000000000", Normalize("+2348000000000"))
}
