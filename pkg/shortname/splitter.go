package shortname

import "strings"

// NameTokens is a full name broken into first, middle and last parts.
// Middle and Last are nil when the name has no such part.
type NameTokens struct {
	First  string
	Middle *string
	Last   *string
}

// SplitName splits a whitespace-delimited full name.
//
// Two tokens are first and last (no middle). Four or more tokens keep the
// first and last and join everything in between as the middle. One and three
// tokens are assigned positionally.
func SplitName(full string) NameTokens {
	parts := strings.Fields(full)

	switch n := len(parts); {
	case n == 0:
		return NameTokens{}
	case n == 2:
		return NameTokens{First: parts[0], Last: &parts[1]}
	case n > 3:
		middle := strings.Join(parts[1:n-1], " ")
		return NameTokens{First: parts[0], Middle: &middle, Last: &parts[n-1]}
	}

	tokens := NameTokens{First: parts[0]}
	if len(parts) == 3 {
		tokens.Middle = &parts[1]
		tokens.Last = &parts[2]
	}
	return tokens
}

// HasLast reports whether the name has a last token.
func (t NameTokens) HasLast() bool { return t.Last != nil }

// HasMiddle reports whether the name has a middle part.
func (t NameTokens) HasMiddle() bool { return t.Middle != nil }

// join builds "first [middle] tail"; collapsing of the gap left by a missing
// middle is done by the engine.
func (t NameTokens) join(tail string) string {
	middle := ""
	if t.Middle != nil {
		middle = *t.Middle
	}
	return t.First + " " + middle + " " + tail
}
