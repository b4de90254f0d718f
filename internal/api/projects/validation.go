package projects

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/folio-hub/folio-server/internal/models"
)

func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}
	return nil
}

func ValidateCategory(category string) error {
	if category == "" {
		return errors.New("category is required")
	}
	if !models.ValidCategory(category) {
		return errors.New("category must be web, mobile, desktop, or other")
	}
	return nil
}

// ValidateTechnologies rejects lists containing empty entries.
func ValidateTechnologies(technologies []string) error {
	for i, tech := range technologies {
		if strings.TrimSpace(tech) == "" {
			return fmt.Errorf("technologies[%d] must not be empty", i)
		}
	}
	return nil
}

// ValidateImages checks each entry parses as an absolute URL.
func ValidateImages(images []string) error {
	for i, img := range images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("images[%d] must not be empty", i)
		}
		u, err := url.Parse(img)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("images[%d] must be an absolute URL", i)
		}
	}
	return nil
}
