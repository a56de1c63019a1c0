package security

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	otpAlphabet = "0123456789"
	otpLength   = 6
)

// MakeOTP generates the 6-digit numeric code mailed to users during
// account verification. Leading zeros are valid, the code is always
// compared as a string.
func MakeOTP() (string, error) {
	return gonanoid.Generate(otpAlphabet, otpLength)
}
