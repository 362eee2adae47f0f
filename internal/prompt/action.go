package prompt

import (
	"fmt"
	"strings"
)

// Kind names one of the three things a user can ask for.
type Kind string

const (
	KindExplain   Kind = "explain"
	KindSolve     Kind = "solve"
	KindTestCases Kind = "test-cases"
)

// Kinds lists every action kind in display order.
var Kinds = []Kind{KindExplain, KindSolve, KindTestCases}

// DisplayName is the label shown next to a result.
func (k Kind) DisplayName() string {
	switch k {
	case KindExplain:
		return "Explain like I am 5"
	case KindSolve:
		return "Solution"
	case KindTestCases:
		return "Test Cases"
	default:
		return string(k)
	}
}

// ParseKind accepts the wire names plus a few shorthands.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "explain", "eli5":
		return KindExplain, nil
	case "solve", "solution":
		return KindSolve, nil
	case "test-cases", "testcases", "test_cases", "cases", "nasty":
		return KindTestCases, nil
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, s)
}

// Action is a closed set of variants: Explain, Solve and AdversarialCases.
// Only Solve carries a payload.
type Action interface {
	Kind() Kind
	isAction()
}

// Explain asks for a novice-friendly walkthrough of the problem.
type Explain struct{}

// Solve asks for a solution written in Language.
type Solve struct {
	Language Language
}

// AdversarialCases asks for a table of edge cases likely to break a solution.
type AdversarialCases struct{}

func (Explain) Kind() Kind          { return KindExplain }
func (Solve) Kind() Kind            { return KindSolve }
func (AdversarialCases) Kind() Kind { return KindTestCases }

func (Explain) isAction()          {}
func (Solve) isAction()            {}
func (AdversarialCases) isAction() {}

// NewSolve validates lang before building a Solve action.
func NewSolve(lang Language) (Solve, error) {
	if !lang.Valid() {
		if lang == "" {
			return Solve{}, fmt.Errorf("%w: a language is required for solution generation", ErrInvalidArgument)
		}
		return Solve{}, fmt.Errorf("%w: unsupported language %q", ErrInvalidArgument, lang)
	}
	return Solve{Language: lang}, nil
}

// NewAction builds an Action from loosely typed input such as a JSON body or
// CLI flags. The language is ignored unless kind is solve.
func NewAction(kind, language string) (Action, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindExplain:
		return Explain{}, nil
	case KindTestCases:
		return AdversarialCases{}, nil
	}

	if strings.TrimSpace(language) == "" {
		return nil, fmt.Errorf("%w: a language is required for solution generation", ErrInvalidArgument)
	}
	lang, err := ParseLanguage(language)
	if err != nil {
		return nil, err
	}
	return NewSolve(lang)
}
