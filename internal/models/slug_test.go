package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyCode(t *testing.T) {
	cases := map[string]string{
		"Owner":            "owner",
		"Branch Manager":   "branch_manager",
		"Sales / Support":  "sales_support",
		"  Trimmed  ":      "trimmed",
		"Already_ok":       "already_ok",
		"Dots.and-dashes!": "dots_and_dashes",
		"123 Numbers":      "123_numbers",
	}
	for in, want := range cases {
		assert.Equal(t, want, SlugifyCode(in), "input %q", in)
	}
}
