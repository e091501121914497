package utils

import (
	"fmt"
	"regexp"
	"strings"

	"escrowmart-web/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, ", ")
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateRegistration checks the registration form before it is sent to
// the backend. Only presentation-level checks; the backend owns the rules.
func ValidateRegistration(r models.UserRegistration) error {
	var errors ValidationErrors

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}
	if !emailRegex.MatchString(r.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(r.Password) < 8 {
		errors = append(errors, ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.Role != models.UserRoleBuyer && r.Role != models.UserRoleSeller {
		errors = append(errors, ValidationError{Field: "role", Message: "role must be buyer or seller"})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateLogin checks the login form
func ValidateLogin(l models.UserLogin) error {
	var errors ValidationErrors

	if strings.TrimSpace(l.Email) == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	}
	if l.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateWithdrawal checks a withdrawal form before it is sent to the
// backend; balance checks stay server-side
func ValidateWithdrawal(w models.WithdrawalRequest) error {
	var errors ValidationErrors

	if w.Amount <= 0 {
		errors = append(errors, ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if strings.TrimSpace(w.AccountDetails.BankName) == "" {
		errors = append(errors, ValidationError{Field: "bankName", Message: "bank name is required"})
	}
	if strings.TrimSpace(w.AccountDetails.AccountNumber) == "" {
		errors = append(errors, ValidationError{Field: "accountNumber", Message: "account number is required"})
	}
	if strings.TrimSpace(w.AccountDetails.AccountName) == "" {
		errors = append(errors, ValidationError{Field: "accountName", Message: "account name is required"})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
