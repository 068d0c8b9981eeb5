package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats a phone number to E.164 using the given default
// region. Format validation belongs to the form layer, so input that cannot
// be parsed or is not a valid number is returned verbatim.
func NormalizePhone(phoneString, defaultRegion string) string {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return cleanPhone
	}

	num, err := phonenumbers.Parse(cleanPhone, defaultRegion)
	if err != nil {
		return phoneString
	}

	if !phonenumbers.IsValidNumber(num) {
		return phoneString
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
