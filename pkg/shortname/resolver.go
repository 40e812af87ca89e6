package shortname

import "fmt"

// Entry pairs an entity identity with its candidate list.
type Entry struct {
	ID         string
	Candidates []string
}

// Resolve assigns one value per entry so that no two entries share a value
// unless both have run out of alternatives.
//
// Every round groups entries by their current head candidate. In a bucket
// with more than one occupant, each occupant that still has alternatives
// drops its head and moves to the next candidate; occupants down to their
// last candidate keep it. All colliding occupants advance in the same round,
// so there is no arrival-order winner. Rounds repeat until every bucket holds
// a single entry or only entries without alternatives.
func Resolve(entries []Entry) (map[string]string, error) {
	result, _, err := ResolveRounds(entries)
	return result, err
}

// ResolveRounds is Resolve that also reports how many leveling rounds ran.
func ResolveRounds(entries []Entry) (map[string]string, int, error) {
	remaining := make(map[string][]string, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		if len(e.Candidates) == 0 {
			return nil, 0, fmt.Errorf("%w: entity %q", ErrEmptyCandidates, e.ID)
		}
		if _, dup := remaining[e.ID]; dup {
			return nil, 0, fmt.Errorf("%w: entity %q", ErrDuplicateEntry, e.ID)
		}
		remaining[e.ID] = e.Candidates
		order = append(order, e.ID)
	}

	rounds := 0
	for {
		buckets, keys := group(order, remaining)
		rounds++

		done := true
		for _, head := range keys {
			ids := buckets[head]
			if len(ids) == 1 {
				continue
			}
			for _, id := range ids {
				list := remaining[id]
				if len(list) == 0 {
					return nil, rounds, fmt.Errorf("%w: entity %q", ErrEmptyCandidates, id)
				}
				if list[0] != head {
					return nil, rounds, fmt.Errorf("%w: entity %q has %q, bucket %q", ErrHeadMismatch, id, list[0], head)
				}
				if len(list) == 1 {
					continue
				}
				remaining[id] = list[1:]
				done = false
			}
		}

		if done {
			break
		}
	}

	result := make(map[string]string, len(order))
	for _, id := range order {
		result[id] = remaining[id][0]
	}
	return result, rounds, nil
}

// group buckets entity IDs by head candidate. Bucket keys are returned in
// first-seen order so errors are reported deterministically.
func group(order []string, remaining map[string][]string) (map[string][]string, []string) {
	buckets := make(map[string][]string)
	keys := make([]string, 0, len(order))
	for _, id := range order {
		head := remaining[id][0]
		if _, ok := buckets[head]; !ok {
			keys = append(keys, head)
		}
		buckets[head] = append(buckets[head], id)
	}
	return buckets, keys
}
