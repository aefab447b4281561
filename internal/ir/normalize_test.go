package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	cafeNFD = "cafe\u0301"
	cafeNFC = "caf\u00e9"
)

func TestNormalizeIDs(t *testing.T) {
	in := []string{cafeNFD, "rome"}

	got := NormalizeIDs(in)
	assert.Equal(t, []string{cafeNFC, "rome"}, got)
	assert.Equal(t, cafeNFD, in[0], "input must not be modified")
	assert.Nil(t, NormalizeIDs(nil))
}

func TestNormalizeHint(t *testing.T) {
	tests := []struct {
		name string
		in   Hint
		want Hint
	}{
		{"anchor", AnchorHint{EventID: cafeNFD, Position: 3}, AnchorHint{EventID: cafeNFC, Position: 3}},
		{"relative", RelativeHint{EarlierEventID: "rome", LaterEventID: cafeNFD}, RelativeHint{EarlierEventID: "rome", LaterEventID: cafeNFC}},
		{"bracket", BracketHint{EventID: cafeNFD, YearRange: [2]int{-69, -19}}, BracketHint{EventID: cafeNFC, YearRange: [2]int{-69, -19}}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHint(tt.in))
		})
	}
}
