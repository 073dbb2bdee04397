package soap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestletech/goforce/pkg/force"
)

func TestSerialize_CustomFieldShape(t *testing.T) {
	t.Parallel()

	rec := force.Record{Fields: []force.Field{
		{Name: "fullName", Value: "Foo__c"},
		{Name: "label", Value: "Foo"},
		{Name: "length", Value: 100},
		{Name: "type", Value: "Text"},
	}}

	node, err := Build(rec, "CustomField")
	require.NoError(t, err)

	got := Serialize(node, "Metadata", "")
	want := `<Metadata xsi:type="CustomField"><fullName>Foo__c</fullName>` +
		`<label>Foo</label><length>100</length><type>Text</type></Metadata>`
	assert.Equal(t, want, got)
}

func TestSerialize_RepeatedSiblings(t *testing.T) {
	t.Parallel()

	node, err := Build([]string{"A__c", "B__c"}, "")
	require.NoError(t, err)

	got := Serialize(node, "fullNames", "")
	assert.Equal(t, `<fullNames>A__c</fullNames><fullNames>B__c</fullNames>`, got)
}

func TestSerialize_NamespaceOnOuterElementOnly(t *testing.T) {
	t.Parallel()

	rec := force.Record{Fields: []force.Field{
		{Name: "type", Value: "CustomObject"},
		{Name: "fullNames", Value: []string{"A__c"}},
	}}

	node, err := Build(rec, "")
	require.NoError(t, err)

	got := Serialize(node, "deleteMetadata", "http://soap.sforce.com/2006/04/metadata")
	want := `<deleteMetadata xmlns="http://soap.sforce.com/2006/04/metadata">` +
		`<type>CustomObject</type><fullNames>A__c</fullNames></deleteMetadata>`
	assert.Equal(t, want, got)
}

func TestSerialize_TableRowOrder(t *testing.T) {
	t.Parallel()

	const rowCount = 5

	table := force.Table{Columns: []string{"fullName"}}
	for i := 0; i < rowCount; i++ {
		table.Rows = append(table.Rows, []interface{}{fmt.Sprintf("Row%d__c", i)})
	}

	node, err := Build(table, "")
	require.NoError(t, err)

	fragment := Serialize(node, "metadata", "")
	parsed, err := ParseDocument([]byte("<wrapper>" + fragment + "</wrapper>"))
	require.NoError(t, err)

	siblings := parsed.FindAll("metadata")
	require.Len(t, siblings, rowCount)

	for i, sibling := range siblings {
		assert.Equal(t, fmt.Sprintf("Row%d__c", i), sibling.ChildText("fullName"))
	}
}

func TestSerialize_ScalarRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"plain",
		"with <angle> brackets",
		"amp & quote \" apostrophe '",
		"unicode éü",
		"",
	}

	for _, value := range tests {
		value := value
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			node, err := Build(value, "")
			require.NoError(t, err)

			fragment := Serialize(node, "value", "")
			parsed, err := ParseDocument([]byte(fragment))
			require.NoError(t, err)
			assert.Equal(t, value, parsed.Text)
		})
	}
}
