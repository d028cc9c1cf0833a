package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	out := Redact("reach me at asha.k@example.com please")

	assert.NotContains(t, out, "asha.k@example.com")
	assert.Equal(t, "reach me at [SENSITIVE] please", out)
}

func TestRedactPhoneNumber(t *testing.T) {
	out := Redact("call 9876543210 tomorrow")

	assert.NotContains(t, out, "9876543210")
	assert.Equal(t, "call [SENSITIVE] tomorrow", out)
}

func TestRedactBothPatternsIndependently(t *testing.T) {
	out := Redact("email a@b.co or phone 1234567890")

	assert.Equal(t, 2, strings.Count(out, Sentinel))
	assert.NotContains(t, out, "a@b.co")
	assert.NotContains(t, out, "1234567890")
}

func TestRedactNoMatchIsNoop(t *testing.T) {
	in := "just a normal message with number 123"
	assert.Equal(t, in, Redact(in))
}

func TestRedactIgnoresShorterAndLongerDigitRuns(t *testing.T) {
	// Word boundaries: an 11-digit run is not a 10-digit phone number.
	assert.Equal(t, "id 12345678901", Redact("id 12345678901"))
	assert.Equal(t, "id 123456789", Redact("id 123456789"))
}
