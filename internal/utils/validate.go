package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the first rule a field broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

const (
	MaxQuantity = 10000

	maxEmailLength = 120
	minPassword    = 6
	maxPassword    = 72 // bcrypt ignores anything past 72 bytes
)

var (
	itemNamePattern   = regexp.MustCompile(`^[A-Za-z0-9 \-()&.,]+$`)
	personNamePattern = regexp.MustCompile(`^[A-Za-z \-']+$`)
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")
)

// textField applies the shared contract: required, trimmed, rune length in [min, max],
// every character matching pattern.
func textField(field, label, raw string, min, max int, pattern *regexp.Regexp, charsHint string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid(field, label+" is required")
	}
	if n := utf8.RuneCountInString(s); n < min || n > max {
		return "", invalid(field, label+" must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max)+" characters")
	}
	if !pattern.MatchString(s) {
		return "", invalid(field, label+" can only contain "+charsHint)
	}
	return s, nil
}

// ValidateItemName checks a menu item name.
func ValidateItemName(raw string) (string, error) {
	return textField("name", "Item name", raw, 2, 50, itemNamePattern,
		"letters, numbers, spaces and - ( ) & . ,")
}

// ValidatePrice parses a non-negative price of at most 999999.99, rounded to the cent.
func ValidatePrice(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid("price", "Price is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid("price", "Price must be a valid number")
	}
	if f < 0 {
		return 0, invalid("price", "Price cannot be negative")
	}
	if f > MaxPrice.Float64() {
		return 0, invalid("price", "Price cannot exceed "+MaxPrice.String())
	}
	return MoneyFromFloat(f), nil
}

// ValidateQuantity parses a whole number of items in [1, 10000].
func ValidateQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid("quantity", "Quantity is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("quantity", "Quantity must be a whole number")
	}
	if n < 1 || n > MaxQuantity {
		return 0, invalid("quantity", "Quantity must be between 1 and 10000")
	}
	return n, nil
}

// ValidatePersonName checks a customer name.
func ValidatePersonName(raw string) (string, error) {
	return textField("name", "Name", raw, 2, 100, personNamePattern,
		"letters, spaces, hyphens and apostrophes")
}

// ValidateMobileNumber strips common separators and returns the bare 10 digits.
func ValidateMobileNumber(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid("phone", "Mobile number is required")
	}
	digits := phoneSeparators.Replace(s)
	if !digitsPattern.MatchString(digits) {
		return "", invalid("phone", "Mobile number can only contain digits")
	}
	if len(digits) != 10 {
		return "", invalid("phone", "Mobile number must be exactly 10 digits")
	}
	switch digits[0] {
	case '6', '7', '8', '9':
	default:
		return "", invalid("phone", "Mobile number must start with 6, 7, 8 or 9")
	}
	return digits, nil
}

// ValidateEmail checks a local@domain.tld address of at most 120 characters.
func ValidateEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid("email", "Email is required")
	}
	if len(s) > maxEmailLength {
		return "", invalid("email", "Email cannot exceed 120 characters")
	}
	if !emailPattern.MatchString(s) {
		return "", invalid("email", "Email address is not valid")
	}
	return s, nil
}

// ValidateID parses a positive record id.
func ValidateID(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid(field, "Please select an item")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, invalid(field, "Invalid selection")
	}
	return id, nil
}

// ValidatePassword checks a new admin password. It is not trimmed.
func ValidatePassword(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalid("new_password", "Password is required")
	}
	if len(raw) < minPassword || len(raw) > maxPassword {
		return "", invalid("new_password", "Password must be between 6 and 72 characters")
	}
	return raw, nil
}

// ValidationMessage returns the user-facing text of a validation error, or "" if err is not one.
func ValidationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
