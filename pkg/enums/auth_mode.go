package enums

import "fmt"

// AuthMode selects which identifier the login flow matches against.
type AuthMode string

const (
	AuthModePhone AuthMode = "phone"
	AuthModeEmail AuthMode = "email"
)

var validAuthModes = []AuthMode{
	AuthModePhone,
	AuthModeEmail,
}

// IsValid checks whether the given mode matches the canonical enum.
func (a AuthMode) IsValid() bool {
	for _, candidate := range validAuthModes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuthMode converts raw strings into AuthMode.
func ParseAuthMode(value string) (AuthMode, error) {
	for _, candidate := range validAuthModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid auth mode %q", value)
}
