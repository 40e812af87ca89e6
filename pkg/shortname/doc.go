// Package shortname derives compact display names such as "Mike O." from full
// names and keeps them unique across a collection of records, escalating to
// longer forms only when two records would otherwise collide.
//
// # Candidates
//
// An [Engine] runs a [RuleSet] top to bottom over a full name. Each rule either
// yields a candidate or skips; the result is an ordered, deduplicated list
// that always ends with the full name itself:
//
//	shortname.Candidates("Bobby McDonald")
//	// ["Bobby", "Bobby McD.", "Bobby McDonald"]
//
//	shortname.Candidates("Ann Marie Smith-Jones")
//	// ["Ann", "Ann Marie S-J.", "Ann M. Smith-Jones", "Ann Marie Smith-Jones"]
//
// Rules see a [RuleContext] listing the rules that already matched for the
// current name, which lets later rules defer to earlier, more specific ones.
// Custom rule sets are built with [NewRuleSet] or derived from [DefaultRules]
// with [RuleSet.With] and [RuleSet.Without]. The terminal no_op rule is
// always present.
//
// # Resolution
//
// [Resolve] levels a batch of candidate lists. Entries colliding on the same
// head candidate all move to their next candidate in the same round; there is
// no first-come winner. Entries that only have their full name left keep it,
// so identical full names end up as accepted duplicates:
//
//	shortname.Resolve([]shortname.Entry{
//		{ID: "1", Candidates: shortname.Candidates("Mike Owens")},
//		{ID: "2", Candidates: shortname.Candidates("Mike Mikerson")},
//	})
//	// {"1": "Mike O.", "2": "Mike M."}
//
// # Assignment
//
// An [Assigner] applies a [Binding] (source field, target field, rules and an
// inclusion [Predicate]) to records held in a [Store]. [Assigner.Save] is the
// lifecycle entry point: it greedily assigns a free candidate to new or
// renamed records and persists them. [Assigner.AdjustAll] re-levels a whole
// [Scope] and rewrites values that changed; it is the only operation that
// moves names assigned earlier. A [Group] runs several bindings on the same
// entity type independently.
//
// Assignments against the same target and scope are serialized with a
// [Locker]. The default [LocalLocker] only covers one process; the redis
// package provides a distributed implementation.
//
// # Errors
//
// [ErrEmptyCandidates], [ErrHeadMismatch] and [ErrDuplicateEntry] signal a
// caller bug and are never expected with lists produced by an [Engine].
// Store failures are wrapped with [ErrStoreFailure] and are not retried.
package shortname
