package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/trestletech/goforce/pkg/force"
)

// ErrMissingResponseElement reports a well-formed document that lacks the
// operation's response element.
var ErrMissingResponseElement = errors.New("response element not found")

// Element is a parsed XML element. Namespace prefixes are discarded; the
// wire format is matched on local names only.
type Element struct {
	Name     string
	Text     string
	Children []*Element
}

// Leaf reports whether the element has no child elements.
func (e *Element) Leaf() bool {
	return len(e.Children) == 0
}

// Find returns the first descendant at the given path of local names, or
// nil.
func (e *Element) Find(path ...string) *Element {
	current := e

	for _, name := range path {
		var next *Element

		for _, child := range current.Children {
			if child.Name == name {
				next = child

				break
			}
		}

		if next == nil {
			return nil
		}

		current = next
	}

	return current
}

// FindAll returns all elements at the given path, following every matching
// child at each step.
func (e *Element) FindAll(path ...string) []*Element {
	current := []*Element{e}

	for _, name := range path {
		var next []*Element

		for _, el := range current {
			for _, child := range el.Children {
				if child.Name == name {
					next = append(next, child)
				}
			}
		}

		if len(next) == 0 {
			return nil
		}

		current = next
	}

	return current
}

// ChildText returns the text of the first child with the given name, or "".
func (e *Element) ChildText(name string) string {
	child := e.Find(name)
	if child == nil {
		return ""
	}

	return child.Text
}

// ParseDocument reads a response body into an element tree.
func ParseDocument(data []byte) (*Element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	root := &Element{}
	stack := []*Element{root}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, el)
			stack = append(stack, el)

		case xml.CharData:
			current := stack[len(stack)-1]
			current.Text += string(t)

		case xml.EndElement:
			current := stack[len(stack)-1]
			current.Text = strings.TrimSpace(current.Text)
			stack = stack[:len(stack)-1]
		}
	}

	if len(root.Children) == 0 {
		return nil, errors.New("empty document")
	}

	return root.Children[0], nil
}

// Parse checks a response body for faults and returns the operation's
// result elements. Two positions are checked in fixed order:
//
//  1. The protocol fault at Body/Fault. A populated faultcode+faultstring
//     short-circuits as ProtocolFaultError, even when a result is also
//     present.
//  2. The operation's application fault position from its descriptor. A
//     populated statusCode+message raises ApplicationFaultError.
//
// Per-item failures that only set success=false without populating the
// fault node are data and flow through to normalization.
func Parse(op Operation, body []byte) ([]*Element, error) {
	envelope, err := ParseDocument(body)
	if err != nil {
		return nil, &force.MalformedResponseError{Err: err}
	}

	soapBody := envelope.Find("Body")
	if soapBody == nil {
		return nil, &force.MalformedResponseError{Err: errors.New("missing SOAP Body")}
	}

	if fault := soapBody.Find("Fault"); fault != nil {
		code := stripPrefix(fault.ChildText("faultcode"))
		message := fault.ChildText("faultstring")

		if code != "" && message != "" {
			return nil, &force.ProtocolFaultError{Code: code, Message: message}
		}
	}

	response := soapBody.Find(op.Name + "Response")
	if response == nil {
		return nil, &force.MalformedResponseError{
			Err: fmt.Errorf("%w: %sResponse", ErrMissingResponseElement, op.Name),
		}
	}

	if len(op.FaultPath) > 0 {
		faults := response.FindAll(op.FaultPath...)

		for _, faultEl := range faults {
			code := faultEl.ChildText("statusCode")
			message := faultEl.ChildText("message")

			if code != "" && message != "" {
				return nil, &force.ApplicationFaultError{Code: code, Message: message}
			}
		}
	}

	return response.FindAll(op.ResultPath...), nil
}

// stripPrefix drops a namespace prefix from a fault code, e.g.
// "sf:INVALID_SESSION_ID" becomes "INVALID_SESSION_ID".
func stripPrefix(code string) string {
	if i := strings.Index(code, ":"); i >= 0 {
		return code[i+1:]
	}

	return code
}
