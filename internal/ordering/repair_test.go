package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var baseline = []string{"a", "b", "c", "d", "e", "f"}

func TestRepair(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		want      []string
		repaired  bool
	}{
		{"valid permutation kept", []string{"f", "e", "d", "c", "b", "a"}, []string{"f", "e", "d", "c", "b", "a"}, false},
		{"duplicate and foreign id falls back", []string{"a", "a", "b", "g"}, baseline, true},
		{"duplicate with right length falls back", []string{"a", "a", "c", "d", "e", "f"}, baseline, true},
		{"foreign id with right length falls back", []string{"a", "b", "c", "d", "e", "z"}, baseline, true},
		{"missing id falls back", []string{"a", "b", "c", "d", "e"}, baseline, true},
		{"too long falls back", []string{"a", "b", "c", "d", "e", "f", "g"}, baseline, true},
		{"nil falls back", nil, baseline, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, repaired := Repair(tt.candidate, baseline)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.repaired, repaired)
		})
	}
}

func TestRepair_ReturnsFreshCopy(t *testing.T) {
	got, _ := Repair([]string{"x"}, baseline)
	got[0] = "mutated"
	assert.Equal(t, "a", baseline[0])

	candidate := []string{"b", "a", "c", "d", "e", "f"}
	got, _ = Repair(candidate, baseline)
	got[0] = "mutated"
	assert.Equal(t, "b", candidate[0])
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation([]string{"c", "a", "b"}, []string{"a", "b", "c"}))
	assert.True(t, IsPermutation(nil, nil))
	assert.False(t, IsPermutation([]string{"a", "a", "b"}, []string{"a", "b", "c"}))
	assert.False(t, IsPermutation([]string{"a", "b"}, []string{"a", "b", "c"}))
}
