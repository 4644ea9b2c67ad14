package passwords_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowflix/services/passwords"
)

var ruleOrder = []string{
	"length", "uppercase", "lowercase", "digit", "special",
	"no_spaces", "max_length", "not_common", "no_repeat", "no_sequential",
}

func TestValidateAlwaysReturnsAllRulesInOrder(t *testing.T) {
	for _, pw := range []string{"", "a", "Passw0rd!", strings.Repeat("x", 100)} {
		report := passwords.Validate(pw)
		require.Len(t, report.Results, 10, "password %q", pw)
		for i, result := range report.Results {
			assert.Equal(t, ruleOrder[i], result.ID)
			assert.NotEmpty(t, result.Label)
		}
	}
}

func TestValidateValidOnlyWhenAllPass(t *testing.T) {
	report := passwords.Validate("Passw0rd!")
	require.True(t, report.Valid)
	for _, result := range report.Results {
		assert.True(t, result.Passed, "rule %s", result.ID)
	}

	report = passwords.Validate("short")
	require.False(t, report.Valid)
}

func TestValidateIndividualRules(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ruleID   string
		passed   bool
	}{
		{"too short", "Ab1!", "length", false},
		{"no uppercase", "passw0rd!x", "uppercase", false},
		{"no lowercase", "PASSW0RD!X", "lowercase", false},
		{"no digit", "Password!", "digit", false},
		{"no special", "Passw0rdX", "special", false},
		{"has space", "Pass w0rd!", "no_spaces", false},
		{"over max length", "A1!" + strings.Repeat("bCd", 21), "max_length", false},
		{"common password exact", "LetMeIn", "not_common", false},
		{"common as substring passes", "letmein99", "not_common", true},
		{"four repeats", "Paaaa0rd!", "no_repeat", false},
		{"three repeats pass", "Paaa0rdX!", "no_repeat", true},
		{"digit sequence", "Xy!5678pq", "no_sequential", false},
		{"letter sequence mixed case", "AbCdZ9!qx", "no_sequential", false},
		{"descending digits pass", "Xy!8765pq", "no_sequential", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := passwords.Validate(tc.password)
			for _, result := range report.Results {
				if result.ID == tc.ruleID {
					assert.Equal(t, tc.passed, result.Passed)
					return
				}
			}
			t.Fatalf("rule %s not found in report", tc.ruleID)
		})
	}
}

func TestRateEmptyPasswordIsSentinel(t *testing.T) {
	strength := passwords.Rate("")
	assert.Equal(t, 0, strength.Score)
	assert.Empty(t, strength.Label)
	assert.Empty(t, strength.Color)
}

func TestRateRepeatedLowercase(t *testing.T) {
	// "aaaaaaaa" passes length, lowercase, no_spaces, max_length and
	// not_common; fails the other five.
	strength := passwords.Rate("aaaaaaaa")
	assert.Equal(t, 50, strength.Score)
	assert.Equal(t, "Fair", strength.Label)
	assert.Equal(t, "#f5a623", strength.Color)
}

func TestRateFullMarks(t *testing.T) {
	strength := passwords.Rate("Passw0rd!")
	assert.Equal(t, 100, strength.Score)
	assert.Equal(t, "Very Strong", strength.Label)
	assert.Equal(t, "#00e676", strength.Color)
}

func TestRateTierBoundaries(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		{"    ", 30, "Weak"},            // only max_length, not_common, no_sequential pass
		{"aaaaaaaa", 50, "Fair"},        // 5 of 10
		{"aaaa123", 60, "Good"},         // 6 of 10
		{"Aaaaaaa1", 80, "Strong"},      // 8 of 10 (no special, 7-char repeat run)
		{"Passw0rd!", 100, "Very Strong"},
	}

	for _, tc := range cases {
		strength := passwords.Rate(tc.password)
		assert.Equal(t, tc.score, strength.Score, "password %q", tc.password)
		assert.Equal(t, tc.label, strength.Label, "password %q", tc.password)
	}
}

func TestRateDeterministic(t *testing.T) {
	first := passwords.Rate("Tr1cky!pass")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, passwords.Rate("Tr1cky!pass"))
	}
}

func TestSuggestPassesAllRules(t *testing.T) {
	for i := 0; i < 5; i++ {
		pw, err := passwords.Suggest()
		require.NoError(t, err)
		report := passwords.Validate(pw)
		assert.True(t, report.Valid, "suggested password %q failed validation", pw)
	}
}
