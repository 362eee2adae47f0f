package prompt

import (
	"fmt"
	"strings"
)

// Language is a target language for generated solutions.
type Language string

const (
	Python     Language = "Python"
	JavaScript Language = "JavaScript"
	Java       Language = "Java"
	CPP        Language = "C++"
	Go         Language = "Go"
	Rust       Language = "Rust"
)

// Languages is the closed set of supported targets, in menu order.
var Languages = []Language{Python, CPP, Java, JavaScript, Go, Rust}

var languageAliases = map[string]Language{
	"python":     Python,
	"py":         Python,
	"python3":    Python,
	"javascript": JavaScript,
	"js":         JavaScript,
	"node":       JavaScript,
	"java":       Java,
	"c++":        CPP,
	"cpp":        CPP,
	"cxx":        CPP,
	"go":         Go,
	"golang":     Go,
	"rust":       Rust,
	"rs":         Rust,
}

// Valid reports whether l is one of Languages.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

func (l Language) String() string { return string(l) }

// ParseLanguage resolves a user-supplied name, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	if lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidArgument, s)
}
