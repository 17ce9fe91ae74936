package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"2":   2,
		" 3 ": 3,
		"abc": 1,
		"1.5": 1,
		"0":   0,
		"-4":  -4,

		"99999999999999999999":  math.MaxInt,
		"-99999999999999999999": math.MinInt,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw=%q", raw)
	}
}

func TestStringToUint(t *testing.T) {
	id, ok := StringToUint("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = StringToUint("0")
	assert.False(t, ok)
	_, ok = StringToUint("x")
	assert.False(t, ok)
}
