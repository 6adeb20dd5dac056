package types

import "strings"

// Subject represents the fixed set of catalog subjects.
type Subject string

const (
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectBotany    Subject = "botany"
	SubjectZoology   Subject = "zoology"
)

// Subjects lists every recognized subject in display order.
var Subjects = []Subject{SubjectPhysics, SubjectChemistry, SubjectBotany, SubjectZoology}

// ParseSubject normalizes a raw subject label (case-insensitive) to a Subject.
// The second return value reports whether the label was recognized.
func ParseSubject(raw string) (Subject, bool) {
	switch Subject(strings.ToLower(strings.TrimSpace(raw))) {
	case SubjectPhysics:
		return SubjectPhysics, true
	case SubjectChemistry:
		return SubjectChemistry, true
	case SubjectBotany:
		return SubjectBotany, true
	case SubjectZoology:
		return SubjectZoology, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (s Subject) String() string { return string(s) }
