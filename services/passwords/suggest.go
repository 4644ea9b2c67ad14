package passwords

import (
	"errors"

	"github.com/sethvargo/go-password/password"
)

var ErrSuggestFailed = errors.New("could not generate a password passing all rules")

const suggestAttempts = 10

// Suggest generates a random password that satisfies every rule. The
// generator guarantees digits and symbols but not letter case or the
// absence of sequential runs, so the result is re-checked and regenerated
// until it passes.
func Suggest() (string, error) {
	for attempt := 0; attempt < suggestAttempts; attempt++ {
		pw, err := password.Generate(16, 3, 3, false, false)
		if err != nil {
			return "", err
		}
		if Validate(pw).Valid {
			return pw, nil
		}
	}
	return "", ErrSuggestFailed
}
