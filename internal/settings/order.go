package settings

import "sort"

type positioned interface {
	pos() (position int, name string)
}

func (c MenuCategory) pos() (int, string) { return c.Position, c.Name }
func (t MenuType) pos() (int, string)     { return t.Position, t.Name }

// NormalizeCategories sorts by position with name as tiebreaker, then
// re-indexes positions to a contiguous 0..n-1 range.
func NormalizeCategories(in []MenuCategory) []MenuCategory {
	out := make([]MenuCategory, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return lessPositioned(out[i], out[j]) })
	for i := range out {
		out[i].Position = i
	}
	return out
}

// NormalizeTypes does the same contiguous re-indexing for menu types.
func NormalizeTypes(in []MenuType) []MenuType {
	out := make([]MenuType, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return lessPositioned(out[i], out[j]) })
	for i := range out {
		out[i].Position = i
	}
	return out
}

func lessPositioned(a, b positioned) bool {
	ap, an := a.pos()
	bp, bn := b.pos()
	if ap != bp {
		return ap < bp
	}
	return an < bn
}

// ChangedTypes returns only the entries of want whose position differs from
// the matching entry in have, so a reorder issues writes for moved rows only.
func ChangedTypes(have, want []MenuType) []MenuType {
	current := make(map[string]int, len(have))
	for _, t := range have {
		current[t.ID] = t.Position
	}
	var changed []MenuType
	for _, t := range want {
		if pos, ok := current[t.ID]; ok && pos != t.Position {
			changed = append(changed, t)
		}
	}
	return changed
}
