// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrUsernameEmpty    = errors.New("no username provided")
	ErrUsernameTooShort = errors.New("username must be at least 2 characters long")
	ErrUsernameTooLong  = errors.New("username must be less than 20 characters long")
	ErrUsernameCharset  = errors.New("username can only contain letters, numbers and underscores")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// UsernameValidator checks a candidate username against all format rules
// and reports every violated one, joined into a single error so the
// response can list them all at once.
func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	var violations []string

	if len(u) < 2 {
		violations = append(violations, ErrUsernameTooShort.Error())
	}

	if len(u) > 20 {
		violations = append(violations, ErrUsernameTooLong.Error())
	}

	if !usernamePattern.MatchString(u) {
		violations = append(violations, ErrUsernameCharset.Error())
	}

	if len(violations) > 0 {
		return errors.New(strings.Join(violations, ", "))
	}

	return nil
}
