package factors

import (
	"sort"
	"strings"
)

// Key identifies a catalog entry. Use NewKey so that every part is
// normalised: trimmed, lower-cased, and with "" / "global" regions mapped
// to GlobalRegion.
type Key struct {
	Substance string
	Source    string
	Region    string
}

// NewKey builds a normalised lookup key.
func NewKey(substance, source, region string) Key {
	return Key{
		Substance: normalize(substance),
		Source:    normalize(source),
		Region:    normalize(NormalizeRegion(region)),
	}
}

// NormalizeRegion trims region and maps "" and any casing of "global" to
// GlobalRegion.
func NormalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	if region == "" || strings.EqualFold(region, GlobalRegion) {
		return GlobalRegion
	}
	return region
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Table is a read-only keyed lookup with region fallback.
// Populate it with Put before sharing; concurrent Resolve calls are safe
// once population is finished.
type Table[T any] struct {
	entries map[Key]T
}

// NewTable returns an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[Key]T)}
}

// Put stores v under the normalised key. Later puts win.
func (t *Table[T]) Put(substance, source, region string, v T) {
	t.entries[NewKey(substance, source, region)] = v
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Resolve looks up (substance, source) in region, then in GlobalRegion.
// The Resolution is only meaningful when ok is true.
func (t *Table[T]) Resolve(substance, source, region string) (T, Resolution, bool) {
	key := NewKey(substance, source, region)
	if v, ok := t.entries[key]; ok {
		if key.Region == normalize(GlobalRegion) {
			return v, ResolvedGlobal, true
		}
		return v, ResolvedRegion, true
	}

	key.Region = normalize(GlobalRegion)
	if v, ok := t.entries[key]; ok {
		return v, ResolvedGlobal, true
	}

	var zero T
	return zero, ResolvedDefault, false
}

// Each calls fn for every entry in key order, stopping when fn returns false.
func (t *Table[T]) Each(fn func(Key, T) bool) {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Substance != keys[j].Substance {
			return keys[i].Substance < keys[j].Substance
		}
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Region < keys[j].Region
	})
	for _, k := range keys {
		if !fn(k, t.entries[k]) {
			return
		}
	}
}
