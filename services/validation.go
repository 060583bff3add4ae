package services

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/models"
)

// DateLayout is the stored transaction date format (DD/MM/YYYY).
const DateLayout = "02/01/2006"

const isoDateLayout = "2006-01-02"

const (
	minNameLength        = 3
	minCategoryLength    = 3
	minDescriptionLength = 3
	maxDescriptionLength = 100
)

// ValidateTransaction runs the checks shared by create and update, in
// order, returning the first failure. On success it returns the fields
// normalized for storage: everything trimmed, type and category title-cased.
func ValidateTransaction(in models.TransactionFields) (models.TransactionFields, error) {
	f := models.TransactionFields{
		Type:        strings.TrimSpace(in.Type),
		Category:    strings.TrimSpace(in.Category),
		Amount:      strings.TrimSpace(in.Amount),
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
	}

	if f.Type == "" || f.Category == "" || f.Amount == "" || f.Date == "" || f.Description == "" {
		return f, apperror.ErrMissingFields
	}
	if t := strings.ToLower(f.Type); t != "income" && t != "expense" {
		return f, apperror.ErrInvalidType
	}
	if utf8.RuneCountInString(f.Category) < minCategoryLength {
		return f, apperror.ErrInvalidCategory
	}
	if _, err := ParseAmount(f.Amount); err != nil {
		return f, apperror.ErrInvalidAmount
	}
	if _, err := ParseDate(f.Date); err != nil {
		return f, apperror.ErrInvalidDate
	}
	if n := utf8.RuneCountInString(f.Description); n < minDescriptionLength || n > maxDescriptionLength {
		return f, apperror.ErrInvalidDescription
	}

	f.Type = TitleCase(f.Type)
	f.Category = TitleCase(f.Category)
	return f, nil
}

// ParseAmount parses a whole-number amount.
func ParseAmount(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParseDate parses a DD/MM/YYYY date. Day-of-month bounds and Gregorian
// leap years are enforced, so 31/04/2024 and 29/02/2023 are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// parseQueryDate accepts DD/MM/YYYY or YYYY-MM-DD.
func parseQueryDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(isoDateLayout, s)
}

// TitleCase upper-cases the first character and lower-cases the rest.
func TitleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func validName(name string) bool {
	return utf8.RuneCountInString(name) >= minNameLength
}
