package utils

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses raw in the context of defaultRegion (ISO 3166 alpha-2)
// and returns it in international format, e.g. "0712345678" with "KE" becomes
// "+254 712 345678". Numbers that do not parse or are not valid are a validation error.
func NormalizePhone(raw string, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: phone is required", apperrors.ErrValidation)
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", fmt.Errorf("%w: invalid phone number %q: %v", apperrors.ErrValidation, raw, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: invalid phone number %q", apperrors.ErrValidation, raw)
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), nil
}
