// Package passwords evaluates candidate passwords against the shadowflix
// rule set and derives the strength meter shown while the user types. The
// rules are data, not branches: each one is an independent (id, label,
// predicate) record so the set can grow without touching the evaluation
// loop. Everything here is pure and safe to call per keystroke.
package passwords

import (
	"math"
	"strings"
	"unicode"
)

const specialChars = "!@#$%^&*()-_=+[]{}|;:'\",.<>?/\\`~"

// commonPasswords is the fixed deny-list, matched case-insensitively and
// exactly (no substring matching).
var commonPasswords = []string{
	"password", "password1", "123456", "12345678", "qwerty",
	"abc123", "monkey", "1234567", "letmein", "trustno1",
	"dragon", "baseball", "iloveyou", "master", "sunshine",
	"ashley", "bailey", "passw0rd", "shadow", "123123",
	"welcome", "login", "hello", "admin", "pass", "test",
}

// Rule is a single independent password requirement.
type Rule struct {
	ID    string
	Label string
	Test  func(string) bool
}

// rules is evaluated in order; reports preserve this order so the page can
// render a stable checklist.
var rules = []Rule{
	{
		ID:    "length",
		Label: "At least 8 characters",
		Test:  func(pw string) bool { return len([]rune(pw)) >= 8 },
	},
	{
		ID:    "uppercase",
		Label: "At least one uppercase letter (A-Z)",
		Test:  func(pw string) bool { return strings.ContainsFunc(pw, unicode.IsUpper) },
	},
	{
		ID:    "lowercase",
		Label: "At least one lowercase letter (a-z)",
		Test:  func(pw string) bool { return strings.ContainsFunc(pw, unicode.IsLower) },
	},
	{
		ID:    "digit",
		Label: "At least one digit (0-9)",
		Test:  func(pw string) bool { return strings.ContainsAny(pw, "0123456789") },
	},
	{
		ID:    "special",
		Label: "At least one special character (!@#$%^&*...)",
		Test:  func(pw string) bool { return strings.ContainsAny(pw, specialChars) },
	},
	{
		ID:    "no_spaces",
		Label: "No spaces allowed",
		Test:  func(pw string) bool { return !strings.ContainsFunc(pw, unicode.IsSpace) },
	},
	{
		ID:    "max_length",
		Label: "No more than 64 characters",
		Test:  func(pw string) bool { return len([]rune(pw)) <= 64 },
	},
	{
		ID:    "not_common",
		Label: "Not a common password",
		Test: func(pw string) bool {
			lower := strings.ToLower(pw)
			for _, common := range commonPasswords {
				if lower == common {
					return false
				}
			}
			return true
		},
	},
	{
		ID:    "no_repeat",
		Label: "No more than 3 repeating characters in a row",
		Test:  func(pw string) bool { return !hasRepeatRun(pw, 4) },
	},
	{
		ID:    "no_sequential",
		Label: "No obvious sequential patterns (e.g. 1234, abcd)",
		Test:  func(pw string) bool { return !hasSequentialRun(pw) },
	},
}

// RuleResult is the outcome of one rule for one candidate password.
type RuleResult struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

// Report holds the outcome of every rule. Results always contains one entry
// per rule, in rule order, regardless of how many fail.
type Report struct {
	Valid   bool         `json:"valid"`
	Results []RuleResult `json:"results"`
}

// Strength is the aggregate meter derived from the rule report.
type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Validate runs every rule against the password. Rules never short-circuit
// each other; the page renders the state of all of them.
func Validate(password string) Report {
	results := make([]RuleResult, len(rules))
	valid := true
	for i, rule := range rules {
		passed := rule.Test(password)
		results[i] = RuleResult{ID: rule.ID, Label: rule.Label, Passed: passed}
		if !passed {
			valid = false
		}
	}
	return Report{Valid: valid, Results: results}
}

// Rate scores the password by the fraction of rules passed. An empty
// password is the "no input yet" sentinel: score 0 with empty label and
// color, distinct from a non-empty password that fails everything.
func Rate(password string) Strength {
	if password == "" {
		return Strength{}
	}

	report := Validate(password)
	passed := 0
	for _, r := range report.Results {
		if r.Passed {
			passed++
		}
	}
	score := int(math.Round(float64(passed) / float64(len(report.Results)) * 100))

	switch {
	case score < 40:
		return Strength{Score: score, Label: "Weak", Color: "#e50914"}
	case score < 60:
		return Strength{Score: score, Label: "Fair", Color: "#f5a623"}
	case score < 80:
		return Strength{Score: score, Label: "Good", Color: "#f5d720"}
	case score < 100:
		return Strength{Score: score, Label: "Strong", Color: "#4caf50"}
	default:
		return Strength{Score: score, Label: "Very Strong", Color: "#00e676"}
	}
}

// Rules returns a copy of the rule list for callers that render the
// checklist before any input exists.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func hasRepeatRun(pw string, n int) bool {
	var prev rune
	run := 0
	for _, r := range pw {
		if run > 0 && r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// hasSequentialRun checks for any ascending 4-character window of digits or
// letters ("0123".."6789", "abcd".."wxyz"), case-insensitively.
func hasSequentialRun(pw string) bool {
	lower := strings.ToLower(pw)
	for _, alphabet := range []string{"0123456789", "abcdefghijklmnopqrstuvwxyz"} {
		for i := 0; i+4 <= len(alphabet); i++ {
			if strings.Contains(lower, alphabet[i:i+4]) {
				return true
			}
		}
	}
	return false
}
