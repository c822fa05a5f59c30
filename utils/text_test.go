package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, strings.Repeat("x", 2000), Truncate(strings.Repeat("x", 5000), 2000))
}

func TestTruncateCountsCharactersNotBytes(t *testing.T) {
	// 1500 two-byte runes (3000 bytes) are under the 2000-character cap
	// and must pass through unmodified.
	short := strings.Repeat("é", 1500)
	assert.Equal(t, short, Truncate(short, 2000))

	// Over the cap, exactly limit runes survive and the cut never splits
	// a multibyte sequence.
	long := strings.Repeat("é", 2500)
	got := Truncate(long, 2000)
	assert.Equal(t, 2000, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 2000), got)

	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
}

func TestTruncateNonPositiveLimit(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "abc", Truncate("abc", -1))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "report_2024.pdf", SanitizeFileName("report 2024.pdf"))
	assert.Equal(t, "a_b_c.docx", SanitizeFileName("a/b\\c.docx"))
	assert.Equal(t, "plain-name_1.pdf", SanitizeFileName("plain-name_1.pdf"))
}
