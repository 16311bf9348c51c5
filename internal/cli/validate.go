package cli

import "regexp"

// emailPattern is a superficial sanity check, not RFC validation: some
// non-space characters, an @, more non-space characters, a dot, and more
// non-space characters. The server does not re-check it.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// validEmail reports whether the address passes the client-side check
func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}
