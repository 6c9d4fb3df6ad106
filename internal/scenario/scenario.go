// Package scenario reads judge scenarios from TOML files.
//
// A scenario names a language, the code to judge and its cases:
//
//	description = "sum of two numbers"
//	language = "python"
//	mode = "submit"
//	code = "print(sum(map(int, input().split())))"
//
//	[[tests]]
//	input = "1 2"
//	output = "3"
//	sample = true
//
//	[expect]
//	verdict = "AC"
//	passed = 1
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// Test is a single [[tests]] entry
type Test struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Sample bool   `toml:"sample"`
}

// Expect holds the optional expectations checked after judging.
type Expect struct {
	Verdict string `toml:"verdict"`
	Passed  *int   `toml:"passed"`
}

type document struct {
	Description string `toml:"description"`
	Language    string `toml:"language"`
	Mode        string `toml:"mode"`
	Code        string `toml:"code"`
	CodeFile    string `toml:"code_file"`
	Tests       []Test `toml:"tests"`
	Expect      Expect `toml:"expect"`
}

// Scenario is a judge request converted from TOML.
type Scenario struct {
	Description string
	Language    string
	Mode        domain.Mode
	Code        string
	Cases       []domain.TestCase
	Expect      Expect
}

// Load reads and parses a scenario file. A relative code_file is resolved
// against the scenario's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse converts TOML bytes into a Scenario; baseDir anchors code_file.
func Parse(data []byte, baseDir string) (*Scenario, error) {
	var f document
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if strings.TrimSpace(f.Language) == "" {
		return nil, fmt.Errorf("language is required")
	}

	code := f.Code
	switch {
	case f.Code != "" && f.CodeFile != "":
		return nil, fmt.Errorf("code and code_file are mutually exclusive")
	case f.CodeFile != "":
		p := f.CodeFile
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read code file: %w", err)
		}
		code = string(b)
	case f.Code == "":
		return nil, fmt.Errorf("one of code or code_file is required")
	}

	mode := domain.ModeSubmit
	if f.Mode != "" {
		mode = domain.Mode(f.Mode)
		if !mode.Valid() {
			return nil, fmt.Errorf("unknown mode %q", f.Mode)
		}
	}

	if len(f.Tests) == 0 {
		return nil, fmt.Errorf("at least one [[tests]] entry is required")
	}
	cases := make([]domain.TestCase, len(f.Tests))
	for i, t := range f.Tests {
		cases[i] = domain.TestCase{
			InputText:  t.Input,
			OutputText: t.Output,
			IsSample:   t.Sample,
			Order:      i,
		}
	}

	return &Scenario{
		Description: f.Description,
		Language:    f.Language,
		Mode:        mode,
		Code:        code,
		Cases:       cases,
		Expect:      f.Expect,
	}, nil
}

// Check compares a judged summary with the scenario's expectations and
// returns one message per mismatch.
func (s *Scenario) Check(summary *domain.SubmissionSummary) []string {
	var problems []string
	if s.Expect.Verdict != "" && !strings.EqualFold(s.Expect.Verdict, string(summary.Verdict)) {
		problems = append(problems, fmt.Sprintf("verdict: expected %s, got %s", strings.ToUpper(s.Expect.Verdict), summary.Verdict))
	}
	if s.Expect.Passed != nil && *s.Expect.Passed != summary.Passed {
		problems = append(problems, fmt.Sprintf("passed: expected %d, got %d", *s.Expect.Passed, summary.Passed))
	}
	return problems
}
