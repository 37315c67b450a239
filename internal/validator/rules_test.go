package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRollNumber(t *testing.T) {
	valid := []string{
		"23ucs123",
		"23UCS123",
		"  23ucs123  ",
		"99zzz999",
		"00aaa000",
	}
	for _, roll := range valid {
		t.Run(roll, func(t *testing.T) {
			assert.True(t, ValidRollNumber(roll), "should accept %q", roll)
		})
	}

	invalid := []string{
		"",
		"23ucs12",
		"23ucs1234",
		"2ucs1234",
		"23uc1234",
		"abucs123",
		"23ucsabc",
		"23 cs123",
		"23ucs12x",
		"23ucs123 extra",
	}
	for _, roll := range invalid {
		t.Run("invalid_"+roll, func(t *testing.T) {
			assert.False(t, ValidRollNumber(roll), "should reject %q", roll)
		})
	}
}

func TestValidEmail(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidEmail("a@b.com"))
		assert.True(t, ValidEmail("student.name+tag@university.edu"))
	})

	t.Run("TooShort", func(t *testing.T) {
		assert.False(t, ValidEmail("a@b."))
	})

	t.Run("TooLong", func(t *testing.T) {
		assert.False(t, ValidEmail(strings.Repeat("a", 95)+"@b.com"))
	})

	t.Run("NoAt", func(t *testing.T) {
		assert.False(t, ValidEmail("not-an-email"))
	})

	t.Run("Whitespace", func(t *testing.T) {
		assert.False(t, ValidEmail("a b@c.com"))
	})

	t.Run("NoTLD", func(t *testing.T) {
		assert.False(t, ValidEmail("aa@bbbb"))
	})
}

