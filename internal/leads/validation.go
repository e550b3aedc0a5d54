package leads

import (
	"errors"
	"unicode"
)

// minPhoneDigits is the pre-submit floor: anything shorter is rejected no
// matter which digits it contains.
const minPhoneDigits = 10

var (
	ErrPhoneTooShort = errors.New("phone number must have at least 10 digits")
	ErrPhoneInvalid  = errors.New("phone number may only contain digits")
)

// ValidatePhone enforces the lead phone format before submission.
func ValidatePhone(phone string) error {
	if len(phone) < minPhoneDigits {
		return ErrPhoneTooShort
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return ErrPhoneInvalid
		}
	}
	return nil
}
