package validation

import (
	"fmt"
	"regexp"
	"strings"

	"giftdraw/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateCreateParty checks a create-party request before it reaches the
// remote store: valid host email, valid participant entries, and no duplicate
// emails within the roster. Email comparisons ignore case and whitespace.
func ValidateCreateParty(req models.CreatePartyRequest) error {
	if err := ValidateEmail(req.HostEmail); err != nil {
		return err
	}

	// The host appears in the roster too, so uniqueness is checked across
	// the participant entries only.
	seen := make(map[string]bool, len(req.Participants))
	for i, p := range req.Participants {
		field := fmt.Sprintf("participants[%d]", i)
		if err := ValidateName(p.Name); err != nil {
			return ValidationError{Field: field, Message: err.Error()}
		}
		if err := ValidateEmail(p.Email); err != nil {
			return ValidationError{Field: field, Message: err.Error()}
		}
		normalized := models.NormalizeEmail(p.Email)
		if seen[normalized] {
			return ValidationError{Field: field, Message: fmt.Sprintf("duplicate email %s", normalized)}
		}
		seen[normalized] = true
	}

	return nil
}
