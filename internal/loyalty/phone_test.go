package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "31612345678", "31612345678"},
		{"leading plus kept", "+31612345678", "+31612345678"},
		{"whatsapp suffix stripped", "31612345678@s.whatsapp.net", "31612345678"},
		{"formatting stripped", "+31 6 12-34 56:78", "+31612345678"},
		{"interior plus dropped", "316+12345678", "31612345678"},
		{"surrounding whitespace", "  31612345678  ", "31612345678"},
		{"empty input", "", ""},
		{"letters only", "not-a-number", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.in))
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{
		"+31 6 1234 5678@s.whatsapp.net",
		"31612345678",
		"weird+input",
	}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "input %q", in)
	}
}
