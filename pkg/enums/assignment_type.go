package enums

import "fmt"

// AssignmentType records whether the visitor picked the stylist or the
// engine assigned one.
type AssignmentType string

const (
	AssignmentTypeManual     AssignmentType = "manual"
	AssignmentTypeSystemAuto AssignmentType = "system_auto"
)

var validAssignmentTypes = []AssignmentType{
	AssignmentTypeManual,
	AssignmentTypeSystemAuto,
}

// IsValid checks whether the given type matches the canonical enum.
func (a AssignmentType) IsValid() bool {
	for _, candidate := range validAssignmentTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAssignmentType converts raw strings into AssignmentType.
func ParseAssignmentType(value string) (AssignmentType, error) {
	for _, candidate := range validAssignmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment type %q", value)
}
