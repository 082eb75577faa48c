package helpers

import (
	"strings"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/grid"
)

// eachWithMod iterates collection in grid order, exposing the layout
// metadata next to each item's fields.
//
//	{{#eachWithMod items mod=3 layout="vertical" sortKey="title"}}...{{/eachWithMod}}
func (s *Set) eachWithMod(collection any, options *raymond.Options) string {
	return s.arrange(toSlice(collection), options)
}

func (s *Set) arrange(items []any, options *raymond.Options) string {
	cells := grid.Arrange(items, gridOptions(options), grid.FieldOf)

	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(options.FnWith(grid.Decorate(cell.Item, cell.Meta)))
	}
	return b.String()
}

func gridOptions(options *raymond.Options) grid.Options {
	layout := grid.Horizontal
	if options.HashStr("layout") == string(grid.Vertical) {
		layout = grid.Vertical
	}
	return grid.Options{
		Mod:      hashInt(options, "mod"),
		Limit:    hashInt(options, "limit"),
		Layout:   layout,
		SortKey:  options.HashStr("sortKey"),
		SortDesc: hashBool(options, "sortDesc", false),
	}
}

// loop renders its block end times with @index, @first and @last set.
func (s *Set) loop(options *raymond.Options) string {
	end := hashInt(options, "end")

	var b strings.Builder
	for i := 0; i < end; i++ {
		frame := options.NewDataFrame()
		frame.Set("index", i)
		frame.Set("first", i == 0)
		frame.Set("last", i == end-1)
		b.WriteString(options.FnData(frame))
	}
	return b.String()
}
