package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		raw  string
		want Subject
		ok   bool
	}{
		{"physics", SubjectPhysics, true},
		{"Physics", SubjectPhysics, true},
		{"CHEMISTRY", SubjectChemistry, true},
		{" botany ", SubjectBotany, true},
		{"zoology", SubjectZoology, true},
		{"biology", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSubject(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestSubjectsOrder(t *testing.T) {
	assert.Equal(t, []Subject{SubjectPhysics, SubjectChemistry, SubjectBotany, SubjectZoology}, Subjects)
}
