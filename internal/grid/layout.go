// Package grid arranges ordered items into rows and columns on a 12 unit
// grid, the way listing and navigation templates expect them.
package grid

import "slices"

// Layout selects the reading order of the arranged items.
type Layout string

const (
	Horizontal Layout = "horizontal"
	Vertical   Layout = "vertical"
)

// Units is the total width of a row.
const Units = 12

// NoColumn is the Mod value reported when no column count was requested.
const NoColumn = -1

const showInNavField = "showInNav"

// Options controls a single Arrange call. The zero value keeps every item in
// source order on a single row.
type Options struct {
	// Mod is the number of columns per row; zero disables column metadata.
	Mod int
	// Limit caps the number of kept items; zero or negative means unlimited.
	Limit    int
	Layout   Layout
	SortKey  string
	SortDesc bool
}

// Meta is the presentation metadata computed for one arranged item.
type Meta struct {
	Index       int
	First       bool
	Last        bool
	Mod         int
	Cols        int
	Mod0        bool
	Mod1        bool
	ColWidth    float64
	ColOffset   float64
	FirstOrMod0 bool
	LastOrMod1  bool
}

// Map exposes the metadata under the names templates use.
func (m Meta) Map() map[string]any {
	return map[string]any{
		"index":       m.Index,
		"first":       m.First,
		"last":        m.Last,
		"mod":         m.Mod,
		"cols":        m.Cols,
		"mod0":        m.Mod0,
		"mod1":        m.Mod1,
		"colWidth":    m.ColWidth,
		"colOffset":   m.ColOffset,
		"firstOrMod0": m.FirstOrMod0,
		"lastOrMod1":  m.LastOrMod1,
	}
}

// Cell pairs an untouched source item with its layout metadata.
type Cell[T any] struct {
	Item T
	Meta Meta
}

// FieldFunc reads a named field from an item.
type FieldFunc[T any] func(item T, key string) (any, bool)

// Arrange sorts, filters, limits, reorders and annotates items. The input
// slice is never modified.
func Arrange[T any](items []T, opts Options, field FieldFunc[T]) []Cell[T] {
	if len(items) == 0 {
		return nil
	}

	sorted := items
	if opts.SortKey != "" {
		sorted = slices.Clone(items)
		slices.SortStableFunc(sorted, func(a, b T) int {
			av, _ := field(a, opts.SortKey)
			bv, _ := field(b, opts.SortKey)
			cmp := Compare(av, bv)
			if opts.SortDesc {
				return -cmp
			}
			return cmp
		})
	}

	kept := make([]T, 0, len(sorted))
	for _, item := range sorted {
		if opts.Limit > 0 && len(kept) >= opts.Limit {
			break
		}
		if show, ok := field(item, showInNavField); ok {
			if visible, isBool := show.(bool); isBool && !visible {
				continue
			}
		}
		kept = append(kept, item)
	}

	cols := max(opts.Mod, 0)
	if opts.Layout == Vertical && cols > 0 {
		kept = columnMajor(kept, cols)
	}

	cells := make([]Cell[T], len(kept))
	for i, item := range kept {
		cells[i] = Cell[T]{Item: item, Meta: annotate(i, len(kept), cols)}
	}
	return cells
}

// columnMajor reorders items so that, read row by row across cols columns,
// each column lists consecutive source items top to bottom.
func columnMajor[T any](items []T, cols int) []T {
	n := len(items)
	rows := (n + cols - 1) / cols
	out := make([]T, 0, n)

	row, col := 0, 0
	for row < rows {
		source := row + col*rows
		if source >= n {
			row++
			col = 0
			continue
		}
		out = append(out, items[source])
		col++
	}
	return out
}

func annotate(index, total, cols int) Meta {
	meta := Meta{
		Index: index,
		First: index == 0,
		Last:  index == total-1,
		Cols:  cols,
		Mod:   NoColumn,
	}
	if cols > 0 {
		meta.Mod = index % cols
		meta.Mod0 = meta.Mod == 0
		meta.Mod1 = meta.Mod == cols-1
		meta.ColWidth = float64(Units) / float64(cols)
		meta.ColOffset = meta.ColWidth * float64(meta.Mod)
	}
	meta.FirstOrMod0 = meta.First || meta.Mod0
	meta.LastOrMod1 = meta.Last || meta.Mod1
	return meta
}
