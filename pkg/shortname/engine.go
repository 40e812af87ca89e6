package shortname

import (
	"regexp"
	"slices"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Engine evaluates a RuleSet against full names.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rule set. A zero RuleSet
// evaluates the default rules.
func NewEngine(rules RuleSet) *Engine {
	return &Engine{rules: rules.Rules()}
}

// Candidates returns the short-name candidates for a full name, most
// abbreviated first. Each candidate has whitespace runs collapsed to a single
// space and duplicates are dropped keeping the first occurrence. The list is
// never empty and ends with the full name.
func (e *Engine) Candidates(full string) []string {
	rc := &RuleContext{}
	out := make([]string, 0, len(e.rules))

	for _, r := range e.rules {
		candidate, ok := r.Fn(full, rc)
		if !ok {
			continue
		}
		rc.record(r.Name)

		candidate = whitespaceRun.ReplaceAllString(candidate, " ")
		if !slices.Contains(out, candidate) {
			out = append(out, candidate)
		}
	}

	// The full name is the last resort and must stay at the tail, whatever
	// custom rules emitted.
	full = whitespaceRun.ReplaceAllString(full, " ")
	if i := slices.Index(out, full); i >= 0 {
		out = slices.Delete(out, i, i+1)
	}
	out = append(out, full)

	return out
}

// Candidates evaluates the default rules against a full name.
func Candidates(full string) []string {
	return defaultEngine.Candidates(full)
}

var defaultEngine = NewEngine(DefaultRules())
