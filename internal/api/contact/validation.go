package contact

import (
	"errors"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if len(name) > 200 {
		return errors.New("name must be 200 characters or less")
	}
	return nil
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}
	return nil
}

func ValidateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return errors.New("subject is required")
	}
	if len(subject) > 500 {
		return errors.New("subject must be 500 characters or less")
	}
	return nil
}

func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("message is required")
	}
	if len(message) > 10000 {
		return errors.New("message must be 10000 characters or less")
	}
	return nil
}
