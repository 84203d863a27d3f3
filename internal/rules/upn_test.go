package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUPN(t *testing.T) {
	tests := []struct {
		name  string
		upn   string
		valid bool
	}{
		{"known good", "H801200001001", true},
		{"checksum zero", "A123456789012", true},
		{"wrong check letter", "B123456789012", false},
		{"temporary letter final", "A12345678901R", true},
		{"temporary wrong final", "A12345678901T", false},
		{"too short", "H80120000100", false},
		{"too long", "H8012000010011", false},
		{"lowercase check letter", "h801200001001", false},
		{"excluded letter I", "I801200001001", false},
		{"excluded letter O", "O801200001001", false},
		{"excluded letter S", "S801200001001", false},
		{"letter in middle", "H80120000A001", false},
		{"excluded final letter", "A12345678901S", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidUPN(tt.upn))
		})
	}
}

func TestLetterIndex(t *testing.T) {
	// The sequence excludes I, O and S, so indices shift across the gaps.
	tests := []struct {
		letter byte
		index  int
		ok     bool
	}{
		{'A', 0, true},
		{'H', 7, true},
		{'J', 8, true},
		{'N', 12, true},
		{'P', 13, true},
		{'R', 15, true},
		{'T', 16, true},
		{'Z', 22, true},
		{'I', 0, false},
		{'O', 0, false},
		{'S', 0, false},
		{'5', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.letter), func(t *testing.T) {
			idx, ok := letterIndex(tt.letter)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.index, idx)
			}
		})
	}
}

func TestFinalCode(t *testing.T) {
	code, ok := finalCode('0')
	assert.True(t, ok)
	assert.Equal(t, 0, code)

	code, ok = finalCode('9')
	assert.True(t, ok)
	assert.Equal(t, 9, code)

	code, ok = finalCode('A')
	assert.True(t, ok)
	assert.Equal(t, 10, code)

	code, ok = finalCode('Z')
	assert.True(t, ok)
	assert.Equal(t, 32, code)

	_, ok = finalCode('S')
	assert.False(t, ok)
}
