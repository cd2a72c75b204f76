package domain

// FieldChange is one key with its before and after values, as rendered in the
// audit log view. A nil side means the key was absent on that side.
type FieldChange struct {
	Key    string
	Before *Value
	After  *Value
}

// Diff produces the field-level changes between two snapshots. A nil snapshot
// on one side reports every key of the other side as a pure addition or
// removal. With both present, keys are the union in first-seen order (before
// then after) and a key is reported only when the two values' serialized
// forms differ. Comparison is literal on the serialized bytes: two nested
// maps holding the same entries in a different order compare as different.
// That matches the original display behavior and is intentionally not fixed.
func Diff(before, after *Value) []FieldChange {
	if before == nil && after == nil {
		return nil
	}
	if before == nil {
		return oneSided(after, false)
	}
	if after == nil {
		return oneSided(before, true)
	}

	var changes []FieldChange
	for _, key := range unionKeys(*before, *after) {
		b, hasBefore := before.Get(key)
		a, hasAfter := after.Get(key)
		if hasBefore && hasAfter && b.Equal(a) {
			continue
		}
		change := FieldChange{Key: key}
		if hasBefore {
			bv := b
			change.Before = &bv
		}
		if hasAfter {
			av := a
			change.After = &av
		}
		changes = append(changes, change)
	}
	return changes
}

func oneSided(snapshot *Value, removed bool) []FieldChange {
	var changes []FieldChange
	for _, f := range snapshot.Fields {
		val := f.Value
		change := FieldChange{Key: f.Key}
		if removed {
			change.Before = &val
		} else {
			change.After = &val
		}
		changes = append(changes, change)
	}
	return changes
}

func unionKeys(before, after Value) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, key := range append(before.Keys(), after.Keys()...) {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
