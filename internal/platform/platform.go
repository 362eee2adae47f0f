// Package platform recognises competitive-programming problem URLs.
package platform

import (
	"regexp"
	"strings"
)

// Platform identifies the site hosting a problem.
type Platform string

const (
	LeetCode   Platform = "LeetCode"
	Codeforces Platform = "Codeforces"
	CodeChef   Platform = "CodeChef"
	Unknown    Platform = "Unknown"
)

// Status is the state of the URL input as seen by a caller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Classification is the outcome of evaluating one input.
type Classification struct {
	Input    string   `json:"url"`
	Status   Status   `json:"status"`
	Platform Platform `json:"platform"`
}

// Valid reports whether the input named a supported problem.
func (c Classification) Valid() bool {
	return c.Status == StatusValid
}

type pattern struct {
	platform Platform
	re       *regexp.Regexp
}

// Evaluated in order; the first match wins.
var patterns = []pattern{
	{LeetCode, regexp.MustCompile(`^https?://(www\.)?leetcode\.com/problems/[a-zA-Z0-9-]+/?([?#].*)?$`)},
	{Codeforces, regexp.MustCompile(`^https?://(www\.)?codeforces\.com/((contest|problemset)/problem/.+|contest/[0-9]+/problem/[a-zA-Z0-9]+/?([?#].*)?)$`)},
	{CodeChef, regexp.MustCompile(`^https?://(www\.)?codechef\.com/problems/[a-zA-Z0-9-]+/?([?#].*)?$`)},
}

// Classify matches input against the supported platforms. It returns
// (Unknown, false) for blank input and for input no pattern accepts.
func Classify(input string) (Platform, bool) {
	c := Evaluate(input)
	return c.Platform, c.Valid()
}

// Evaluate is Classify plus the idle/invalid distinction.
func Evaluate(input string) Classification {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Classification{Input: input, Status: StatusIdle, Platform: Unknown}
	}

	for _, p := range patterns {
		if p.re.MatchString(trimmed) {
			return Classification{Input: trimmed, Status: StatusValid, Platform: p.platform}
		}
	}

	return Classification{Input: trimmed, Status: StatusInvalid, Platform: Unknown}
}
