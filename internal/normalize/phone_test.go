package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	t.Run("valid number with export prefix", func(t *testing.T) {
		cc, num := Phone("p:+91 98765 43210")
		assert.Equal(t, "+91", cc)
		assert.Equal(t, "9876543210", num)
	})

	t.Run("valid number without prefix", func(t *testing.T) {
		cc, num := Phone("+14155552671")
		assert.Equal(t, "+1", cc)
		assert.Equal(t, "4155552671", num)
	})

	t.Run("unparseable input passes through raw", func(t *testing.T) {
		cc, num := Phone("not-a-number")
		assert.Equal(t, "", cc)
		assert.Equal(t, "not-a-number", num)
	})

	t.Run("number without international prefix is degraded", func(t *testing.T) {
		// no default region: a bare national number cannot be attributed
		cc, num := Phone("9876543210")
		assert.Equal(t, "", cc)
		assert.Equal(t, "9876543210", num)
	})

	t.Run("empty input", func(t *testing.T) {
		cc, num := Phone("")
		assert.Equal(t, "", cc)
		assert.Equal(t, "", num)
	})

	t.Run("surrounding whitespace is trimmed before parsing", func(t *testing.T) {
		cc, num := Phone("p:  +91 98765 43210  ")
		assert.Equal(t, "+91", cc)
		assert.Equal(t, "9876543210", num)
	})
}
