// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/pdiddy/points-engine/pkg/types"

// fixedColumns are the leading columns of every table, ahead of the
// attribute-derived ones.
var fixedColumns = []string{"Name", "Type"}

// tableColumns returns the column names for one table: Name and Type followed
// by the union of attribute keys across its entries, in first-seen order.
// Entries missing a key render an empty cell for that column.
func tableColumns(t *types.ScheduleTable) []string {
	cols := make([]string, len(fixedColumns))
	copy(cols, fixedColumns)

	present := make(map[string]bool)
	for _, e := range t.Entries {
		for _, key := range e.Attributes.Keys() {
			if !present[key] {
				present[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// entryCells returns one entry's cell values aligned with cols.
func entryCells(e types.PointEntry, cols []string) []string {
	cells := make([]string, len(cols))
	cells[0] = e.Name
	cells[1] = e.Type
	for i, col := range cols[len(fixedColumns):] {
		if v, ok := e.Attributes.Get(col); ok {
			cells[len(fixedColumns)+i] = v
		}
	}
	return cells
}

// block is one schedule table positioned at its nesting depth.
type block struct {
	table *types.ScheduleTable
	depth int
}

// flatten orders the table tree depth-first: each table is followed by its
// children, one nesting level deeper.
func flatten(tables []*types.ScheduleTable) []block {
	var blocks []block
	var walk func(t *types.ScheduleTable, depth int)
	walk = func(t *types.ScheduleTable, depth int) {
		blocks = append(blocks, block{table: t, depth: depth})
		for _, child := range t.Children {
			walk(child, depth+1)
		}
	}
	for _, t := range tables {
		walk(t, 0)
	}
	return blocks
}
