package validators

import (
	"regexp"
	"unicode/utf8"
)

const MaxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// IsUsername accepts letters, digits and @/./+/-/_ up to 150 characters.
func IsUsername(username string) bool {
	return username != "" &&
		utf8.RuneCountInString(username) <= MaxUsernameLength &&
		usernamePattern.MatchString(username)
}
