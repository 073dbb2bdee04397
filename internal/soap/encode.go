package soap

import (
	"encoding/xml"
	"strings"
)

// Serialize renders a node as the XML element elementName. When xmlns is
// non-empty it is declared on the outermost element only; nested elements
// inherit it. A ListNode at the top level emits one sibling element per
// item, all named elementName, in item order.
func Serialize(node Node, elementName, xmlns string) string {
	var b strings.Builder

	writeNode(&b, node, elementName, xmlns)

	return b.String()
}

func writeNode(b *strings.Builder, node Node, name, xmlns string) {
	switch node.Kind {
	case ScalarNode:
		openElement(b, name, xmlns, "")
		escapeInto(b, node.Text)
		closeElement(b, name)

	case RecordNode:
		openElement(b, name, xmlns, node.TypeTag)

		for _, f := range node.Fields {
			writeNode(b, f.Value, f.Name, "")
		}

		closeElement(b, name)

	case ListNode:
		// Repeated siblings share the element name. Order is preserved:
		// package manifests and other list arguments are order-sensitive.
		for _, item := range node.Items {
			writeNode(b, item, name, xmlns)
		}
	}
}

func openElement(b *strings.Builder, name, xmlns, typeTag string) {
	b.WriteByte('<')
	b.WriteString(name)

	if xmlns != "" {
		b.WriteString(` xmlns="`)
		escapeInto(b, xmlns)
		b.WriteByte('"')
	}

	if typeTag != "" {
		b.WriteString(` xsi:type="`)
		escapeInto(b, typeTag)
		b.WriteByte('"')
	}

	b.WriteByte('>')
}

func closeElement(b *strings.Builder, name string) {
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func escapeInto(b *strings.Builder, s string) {
	// strings.Builder never returns a write error.
	_ = xml.EscapeText(b, []byte(s))
}
