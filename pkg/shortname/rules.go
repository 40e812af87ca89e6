package shortname

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Default rule names, in evaluation order.
const (
	RuleJustFirst           = "just_first"
	RuleMcAbbreviation      = "mc_abbreviation"
	RuleHyphenAbbrev        = "hyphen_abbrev"
	RuleFirstAndLastInitial = "first_and_last_initial"
	RuleWithMiddleNames     = "with_middle_names"
	RuleNoOp                = "no_op"
)

// RuleFunc turns a full name into a candidate. The boolean result is false
// when the rule does not apply to the name.
type RuleFunc func(name string, rc *RuleContext) (string, bool)

// Rule is a named RuleFunc.
type Rule struct {
	Name string
	Fn   RuleFunc
}

// RuleContext is created fresh for every candidate-list computation and
// records which rules have produced a candidate so far.
type RuleContext struct {
	matched []string
}

// Matched reports whether any of the named rules already produced a
// candidate for the current name.
func (rc *RuleContext) Matched(names ...string) bool {
	for _, n := range names {
		if slices.Contains(rc.matched, n) {
			return true
		}
	}
	return false
}

// MatchedRules returns the names of rules that matched so far, in order.
func (rc *RuleContext) MatchedRules() []string {
	return slices.Clone(rc.matched)
}

func (rc *RuleContext) record(name string) {
	rc.matched = append(rc.matched, name)
}

// RuleSet is an immutable, ordered list of rules. The last rule is always the
// terminal no_op rule, so evaluating a RuleSet never yields an empty list.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a RuleSet from rules in priority order. The terminal
// no_op rule always runs last: a caller-supplied no_op is moved to the end,
// and the built-in one is appended when none is given. A custom no_op may
// return any candidate; the engine still ends every list with the full name.
// Empty or duplicate rule names and nil functions panic.
func NewRuleSet(rules ...Rule) RuleSet {
	seen := make(map[string]struct{}, len(rules))
	out := make([]Rule, 0, len(rules)+1)
	terminal := Rule{Name: RuleNoOp, Fn: noOp}
	for _, r := range rules {
		if r.Name == "" {
			panic("shortname: rule name must not be empty")
		}
		if r.Fn == nil {
			panic(fmt.Sprintf("shortname: rule %q has no function", r.Name))
		}
		if _, dup := seen[r.Name]; dup {
			panic(fmt.Sprintf("shortname: duplicate rule %q", r.Name))
		}
		seen[r.Name] = struct{}{}
		if r.Name == RuleNoOp {
			terminal = r
			continue
		}
		out = append(out, r)
	}
	out = append(out, terminal)
	return RuleSet{rules: out}
}

// Rules returns a copy of the rules in evaluation order.
func (s RuleSet) Rules() []Rule {
	if len(s.rules) == 0 {
		return DefaultRules().Rules()
	}
	return slices.Clone(s.rules)
}

// Names returns rule names in evaluation order.
func (s RuleSet) Names() []string {
	rules := s.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of rules, terminal rule included.
func (s RuleSet) Len() int {
	return len(s.Rules())
}

// With returns a copy of the set where the named rule is replaced in place,
// or inserted right before the terminal rule when the name is new. Replacing
// no_op swaps the terminal rule's function.
func (s RuleSet) With(name string, fn RuleFunc) RuleSet {
	rules := s.Rules()
	if i := slices.IndexFunc(rules, func(r Rule) bool { return r.Name == name }); i >= 0 {
		rules[i].Fn = fn
		return NewRuleSet(rules...)
	}
	rules = slices.Insert(rules, len(rules)-1, Rule{Name: name, Fn: fn})
	return NewRuleSet(rules...)
}

// Without returns a copy of the set with the named rule removed. The terminal
// rule cannot be removed.
func (s RuleSet) Without(name string) RuleSet {
	rules := slices.DeleteFunc(s.Rules(), func(r Rule) bool { return r.Name == name })
	return NewRuleSet(rules...)
}

// DefaultRules returns the built-in rule set. The rules target anglo-style
// names and their order is significant.
func DefaultRules() RuleSet {
	return NewRuleSet(
		Rule{Name: RuleJustFirst, Fn: justFirst},
		Rule{Name: RuleMcAbbreviation, Fn: mcAbbreviation},
		Rule{Name: RuleHyphenAbbrev, Fn: hyphenAbbrev},
		Rule{Name: RuleFirstAndLastInitial, Fn: firstAndLastInitial},
		Rule{Name: RuleWithMiddleNames, Fn: withMiddleNames},
		Rule{Name: RuleNoOp, Fn: noOp},
	)
}

var (
	mcPrefix    = regexp.MustCompile(`(?i)^(Mac|Mc|O')(\S)`)
	hyphenSplit = regexp.MustCompile(`\s*-\s*`)
)

func justFirst(name string, _ *RuleContext) (string, bool) {
	t := SplitName(name)
	if t.First == "" {
		return "", false
	}
	return t.First, true
}

// mcAbbreviation shortens "McDonald" to "McD.", keeping the prefix as written.
func mcAbbreviation(name string, _ *RuleContext) (string, bool) {
	t := SplitName(name)
	if !t.HasLast() {
		return "", false
	}
	m := mcPrefix.FindStringSubmatch(*t.Last)
	if m == nil {
		return "", false
	}
	return t.join(m[1] + m[2] + "."), true
}

// hyphenAbbrev shortens "Smith-Jones" to "S-J.".
func hyphenAbbrev(name string, _ *RuleContext) (string, bool) {
	t := SplitName(name)
	if !t.HasLast() || !strings.Contains(*t.Last, "-") {
		return "", false
	}

	parts := hyphenSplit.Split(*t.Last, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	initials := make([]string, len(parts))
	for i, p := range parts {
		initials[i] = firstRune(p)
	}
	return t.join(strings.Join(initials, "-") + "."), true
}

// firstAndLastInitial is skipped when a Mc or hyphen form already matched:
// those are special cases and a plain initial would only add noise.
func firstAndLastInitial(name string, rc *RuleContext) (string, bool) {
	if rc.Matched(RuleMcAbbreviation, RuleHyphenAbbrev) {
		return "", false
	}
	t := SplitName(name)
	if !t.HasLast() {
		return "", false
	}
	return t.First + " " + firstRune(*t.Last) + ".", true
}

func withMiddleNames(name string, _ *RuleContext) (string, bool) {
	t := SplitName(name)
	if !t.HasMiddle() {
		return "", false
	}

	middles := strings.Fields(*t.Middle)
	initials := make([]string, len(middles))
	for i, m := range middles {
		initials[i] = firstRune(m) + "."
	}

	last := ""
	if t.HasLast() {
		last = *t.Last
	}
	return t.First + " " + strings.Join(initials, " ") + " " + last, true
}

func noOp(name string, _ *RuleContext) (string, bool) {
	return name, true
}

func firstRune(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
