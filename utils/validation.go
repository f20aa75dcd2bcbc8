// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in an acceptable format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Optional + prefix followed by 7-15 digits, leading zero allowed for
	// locally written numbers
	regex := `^\+?[0-9]{7,15}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
