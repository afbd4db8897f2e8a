package entity

import "strings"

// MaxTitleLength bounds article titles to keep list responses reasonable.
const MaxTitleLength = 300

// ValidateTitle checks that a title is non-empty and within bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "is too long"}
	}
	return nil
}

// ValidateVisibility checks that v is one of the supported visibility values.
func ValidateVisibility(v Visibility) error {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return nil
	}
	return &ValidationError{Field: "visibility", Message: "must be public or private"}
}
