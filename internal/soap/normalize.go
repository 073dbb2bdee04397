package soap

import (
	"github.com/trestletech/goforce/pkg/force"
)

// Normalize converts result elements into rectangular rows. Columns are
// returned in first-seen wire order. Fields absent on an individual result
// are filled with force.Null so downstream tabular consumers always see the
// same key set on every row.
//
// Two modes:
//   - flatten=true: nested elements collapse into dotted keys
//     ("errors.message"), producing one wide row per result. Used for
//     CRUD-style confirmations.
//   - flatten=false: nested elements become nested force.ResultRecord
//     values. Used for read/describe/list/status results.
func Normalize(elements []*Element, flatten bool) ([]force.ResultRecord, []string) {
	rows := make([]force.ResultRecord, len(elements))
	var columns []string
	seen := map[string]bool{}

	for i, el := range elements {
		var row force.ResultRecord
		if flatten {
			row = force.ResultRecord{}
			flattenInto(row, el, "")
		} else {
			row = normalizeRecord(el)
		}

		for _, key := range keysInWireOrder(el, flatten) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}

		rows[i] = row
	}

	// Rectangular fill: every row gets every column.
	for _, row := range rows {
		for _, col := range columns {
			if _, ok := row[col]; !ok {
				row[col] = force.Null
			}
		}
	}

	return rows, columns
}

// normalizeRecord converts one element into a record. Leaf children become
// scalar fields, repeated same-named children become slices, and nested
// elements become nested records. A leaf result element becomes a
// single-field record keyed by its own name.
func normalizeRecord(el *Element) force.ResultRecord {
	row := force.ResultRecord{}

	if el.Leaf() {
		row[el.Name] = el.Text

		return row
	}

	for _, group := range groupChildren(el) {
		if len(group.elements) == 1 {
			row[group.name] = normalizeValue(group.elements[0])

			continue
		}

		values := make([]interface{}, len(group.elements))
		for i, child := range group.elements {
			values[i] = normalizeValue(child)
		}

		row[group.name] = values
	}

	return row
}

func normalizeValue(el *Element) interface{} {
	if el.Leaf() {
		return el.Text
	}

	return normalizeRecord(el)
}

// flattenInto collapses an element subtree into dotted keys on row.
// Repeated siblings keep slice values even in flat mode.
func flattenInto(row force.ResultRecord, el *Element, prefix string) {
	for _, group := range groupChildren(el) {
		key := group.name
		if prefix != "" {
			key = prefix + "." + group.name
		}

		if len(group.elements) == 1 {
			child := group.elements[0]
			if child.Leaf() {
				row[key] = child.Text
			} else {
				flattenInto(row, child, key)
			}

			continue
		}

		values := make([]interface{}, len(group.elements))
		for i, child := range group.elements {
			values[i] = normalizeValue(child)
		}

		row[key] = values
	}
}

type childGroup struct {
	name     string
	elements []*Element
}

// groupChildren collects children by name, preserving first-seen order.
func groupChildren(el *Element) []childGroup {
	var groups []childGroup
	index := map[string]int{}

	for _, child := range el.Children {
		if i, ok := index[child.Name]; ok {
			groups[i].elements = append(groups[i].elements, child)

			continue
		}

		index[child.Name] = len(groups)
		groups = append(groups, childGroup{name: child.Name, elements: []*Element{child}})
	}

	return groups
}

// keysInWireOrder returns the top-level keys a row will carry, in the order
// the wire presented them.
func keysInWireOrder(el *Element, flatten bool) []string {
	if el.Leaf() {
		return []string{el.Name}
	}

	var keys []string

	for _, group := range groupChildren(el) {
		if flatten && len(group.elements) == 1 && !group.elements[0].Leaf() {
			for _, nested := range keysInWireOrder(group.elements[0], true) {
				keys = append(keys, group.name+"."+nested)
			}

			continue
		}

		keys = append(keys, group.name)
	}

	return keys
}
