// Package soap implements the Metadata API request/response pipeline: the
// labeled-tree intermediate representation for payloads, its XML
// serialization, SOAP envelope templating, the per-operation wire
// descriptors, response parsing with two-position fault checking, and result
// normalization.
package soap

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/trestletech/goforce/pkg/force"
)

// Static errors for tree construction.
var (
	ErrUnsupportedValue = errors.New("unsupported value type")
	ErrUnorderedValue   = errors.New("maps are not accepted: field order cannot be preserved, use force.Record")
	ErrRowTooWide       = errors.New("table row has more values than columns")
)

// NodeKind discriminates the tree variants. Every downstream component
// switches exhaustively on these three.
type NodeKind int

const (
	// ScalarNode holds a single text value.
	ScalarNode NodeKind = iota

	// RecordNode holds ordered named children and an optional type tag.
	RecordNode

	// ListNode holds ordered items that serialize as repeated siblings
	// sharing one element name.
	ListNode
)

// Node is the canonical intermediate representation for any metadata
// payload. Built fresh per call and discarded after serialization.
type Node struct {
	Kind NodeKind

	// Text is the value of a ScalarNode.
	Text string

	// TypeTag names the concrete metadata subtype of a RecordNode and is
	// emitted as an xsi:type attribute.
	TypeTag string

	// Fields are the ordered children of a RecordNode.
	Fields []FieldNode

	// Items are the ordered members of a ListNode.
	Items []Node
}

// FieldNode is one named child of a RecordNode.
type FieldNode struct {
	Name  string
	Value Node
}

// Scalar returns a scalar node.
func Scalar(text string) Node {
	return Node{Kind: ScalarNode, Text: text}
}

// Build converts a caller-supplied value into the tree IR. typeTag, when
// non-empty, overrides the type tag of a top-level record. Accepted shapes:
// scalars, force.Record, []force.Record, []string, []interface{}, and
// force.Table. Maps are rejected because they cannot preserve field order.
func Build(value interface{}, typeTag string) (Node, error) {
	switch v := value.(type) {
	case nil:
		return Scalar(""), nil

	case force.Record:
		return buildRecord(v, typeTag)

	case *force.Record:
		return buildRecord(*v, typeTag)

	case []force.Record:
		items := make([]Node, len(v))

		for i, rec := range v {
			node, err := buildRecord(rec, typeTag)
			if err != nil {
				return Node{}, err
			}

			items[i] = node
		}

		return Node{Kind: ListNode, Items: items}, nil

	case []string:
		items := make([]Node, len(v))
		for i, s := range v {
			items[i] = Scalar(s)
		}

		return Node{Kind: ListNode, Items: items}, nil

	case []interface{}:
		items := make([]Node, len(v))

		for i, item := range v {
			node, err := Build(item, typeTag)
			if err != nil {
				return Node{}, err
			}

			items[i] = node
		}

		return Node{Kind: ListNode, Items: items}, nil

	case force.Table:
		return buildTable(v, typeTag)

	case *force.Table:
		return buildTable(*v, typeTag)

	case map[string]interface{}, map[string]string:
		return Node{}, ErrUnorderedValue

	default:
		text, ok := scalarText(value)
		if !ok {
			return Node{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
		}

		return Scalar(text), nil
	}
}

func buildRecord(rec force.Record, typeTag string) (Node, error) {
	node := Node{Kind: RecordNode, TypeTag: rec.Type}
	if typeTag != "" {
		node.TypeTag = typeTag
	}

	node.Fields = make([]FieldNode, 0, len(rec.Fields))

	for _, f := range rec.Fields {
		// Nested values carry their own type tags; the override applies
		// only at the level it was given.
		child, err := Build(f.Value, "")
		if err != nil {
			return Node{}, fmt.Errorf("field %q: %w", f.Name, err)
		}

		node.Fields = append(node.Fields, FieldNode{Name: f.Name, Value: child})
	}

	return node, nil
}

// buildTable converts each row into a record with the full column set.
// Short rows are padded with empty scalars so every sibling has an
// identical shape.
func buildTable(t force.Table, typeTag string) (Node, error) {
	items := make([]Node, len(t.Rows))

	for i, row := range t.Rows {
		if len(row) > len(t.Columns) {
			return Node{}, fmt.Errorf("row %d: %w", i, ErrRowTooWide)
		}

		rec := Node{Kind: RecordNode, TypeTag: typeTag}
		rec.Fields = make([]FieldNode, len(t.Columns))

		for j, col := range t.Columns {
			value := Scalar("")

			if j < len(row) && row[j] != nil {
				built, err := Build(row[j], "")
				if err != nil {
					return Node{}, fmt.Errorf("row %d column %q: %w", i, col, err)
				}

				value = built
			}

			rec.Fields[j] = FieldNode{Name: col, Value: value}
		}

		items[i] = rec
	}

	return Node{Kind: ListNode, Items: items}, nil
}

// scalarText stringifies supported scalar types.
func scalarText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
