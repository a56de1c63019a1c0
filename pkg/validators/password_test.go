package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	require.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	require.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
	require.NoError(t, PasswordValidator("secret1"))
}

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	require.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	require.NoError(t, EmailValidator("a@x.com"))
}
