package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSum = "https://leetcode.com/problems/two-sum/"

func TestBuildExplain(t *testing.T) {
	req, err := Build(twoSum, Explain{})
	require.NoError(t, err)

	assert.Equal(t, KindExplain, req.Action.Kind())
	assert.Equal(t, twoSum, req.URL)
	assert.Contains(t, req.Prompt, twoSum)
	assert.Contains(t, req.Prompt, "5-year-old")
	assert.Contains(t, req.SystemInstruction, "NEVER use LaTeX")
	assert.Nil(t, req.Temperature, "embedded templates defer to the configured temperature")
	assert.Nil(t, req.WebSearch, "embedded templates defer to the configured web search setting")
}

func TestBuildSolveContainsLanguage(t *testing.T) {
	for _, lang := range Languages {
		t.Run(lang.String(), func(t *testing.T) {
			req, err := Build(twoSum, Solve{Language: lang})
			require.NoError(t, err)
			assert.Contains(t, req.Prompt, "Generate optimized code in "+lang.String())
			assert.Contains(t, req.Prompt, "Complexity Analysis")
		})
	}
}

func TestBuildSolveWithoutLanguage(t *testing.T) {
	_, err := Build(twoSum, Solve{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Build(twoSum, Solve{Language: "COBOL"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildTestCases(t *testing.T) {
	req, err := Build(twoSum, AdversarialCases{})
	require.NoError(t, err)
	assert.Contains(t, req.Prompt, "Nasty Test Scenarios")
	assert.Contains(t, req.Prompt, "Input and Logic")
}

func TestBuildNilAction(t *testing.T) {
	_, err := Build(twoSum, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewAction(t *testing.T) {
	a, err := NewAction("explain", "")
	require.NoError(t, err)
	assert.Equal(t, Explain{}, a)

	a, err = NewAction("test-cases", "rust")
	require.NoError(t, err)
	assert.Equal(t, AdversarialCases{}, a)

	a, err = NewAction("Solution", "cpp")
	require.NoError(t, err)
	assert.Equal(t, Solve{Language: CPP}, a)

	_, err = NewAction("solve", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewAction("solve", "brainfuck")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewAction("dance", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"Python": Python, "py": Python, "JS": JavaScript, "java": Java,
		"C++": CPP, "cpp": CPP, "golang": Go, "Go": Go, " rust ": Rust,
	}
	for in, want := range cases {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLanguage("kotlin")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseTemplatesRequiresEveryKind(t *testing.T) {
	_, err := ParseTemplates([]byte("system: hi\nprompts:\n  explain: x\n  solve: y\n"))
	assert.ErrorContains(t, err, "test-cases")

	_, err = ParseTemplates([]byte("prompts: {}\n"))
	assert.ErrorContains(t, err, "system instruction")
}

func TestLoadBuilderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	body := `temperature: 0.7
web_search: false
system: Be brief.
prompts:
  explain: "Explain {{.URL}}"
  solve: "Solve {{.URL}} in {{.Language}}"
  test-cases: "Break {{.URL}}"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	b, err := LoadBuilder(path)
	require.NoError(t, err)

	req, err := b.Build(twoSum, Solve{Language: Go})
	require.NoError(t, err)
	assert.Equal(t, "Solve "+twoSum+" in Go", req.Prompt)
	assert.Equal(t, "Be brief.", req.SystemInstruction)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
	require.NotNil(t, req.WebSearch)
	assert.False(t, *req.WebSearch)
}

func TestLoadBuilderWithoutTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	body := `system: Be brief.
prompts:
  explain: "Explain {{.URL}}"
  solve: "Solve {{.URL}} in {{.Language}}"
  test-cases: "Break {{.URL}}"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	b, err := LoadBuilder(path)
	require.NoError(t, err)

	req, err := b.Build(twoSum, Explain{})
	require.NoError(t, err)
	assert.Nil(t, req.Temperature)
	assert.Nil(t, req.WebSearch)
}

func TestLoadBuilderMissingFile(t *testing.T) {
	_, err := LoadBuilder(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
