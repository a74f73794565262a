package utils

import (
	"errors"
	"regexp"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func ValidateTitle(title string) error {
	if len(title) == 0 || len(title) > 255 {
		return errors.New("title must be between 1 and 255 characters")
	}
	return nil
}

func ValidateTagName(name string) error {
	if len(name) == 0 || len(name) > 50 {
		return errors.New("tag name must be between 1 and 50 characters")
	}
	return nil
}

func ValidateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return errors.New("color must be a hex RGB value like #3B82F6")
	}
	return nil
}

// ParseDueDate accepts an RFC 3339 datetime.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("due date must be a valid RFC 3339 datetime")
	}
	return t, nil
}
