package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare ten digits", input: "5551234567", want: "+15551234567"},
		{name: "eleven digits with country code", input: "15551234567", want: "+15551234567"},
		{name: "formatted", input: "(555) 123-4567", want: "+15551234567"},
		{name: "formatted with country code", input: "+1 (555) 123-4567", want: "+15551234567"},
		{name: "dots and spaces", input: "555.123.4567", want: "+15551234567"},
		{name: "already normalized is idempotent", input: "+15551234567", want: "+15551234567"},
		{name: "too short returned unchanged", input: "12345", want: "12345"},
		{name: "eleven digits without leading one unchanged", input: "25551234567", want: "25551234567"},
		{name: "international number unchanged", input: "+442071234567", want: "+442071234567"},
		{name: "empty unchanged", input: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, NormalizePhone(tc.input))
		})
	}
}

func TestNormalizePhone_DoubleApplication(t *testing.T) {
	t.Parallel()

	inputs := []string{"5551234567", "(555) 123-4567", "+15551234567"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		assert.Equal(t, once, NormalizePhone(once))
	}
}
