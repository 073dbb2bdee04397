package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestletech/goforce/pkg/force"
)

func parseResults(t *testing.T, opName, body string) []*Element {
	t.Helper()

	results, err := Parse(mustLookup(t, opName), envelopeWith(body))
	require.NoError(t, err)

	return results
}

func TestNormalize_HeterogeneousFieldsFilledWithNull(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "listMetadata",
		`<listMetadataResponse>`+
			`<result><fullName>A__c</fullName><manageableState>unmanaged</manageableState></result>`+
			`<result><fullName>B__c</fullName></result>`+
			`</listMetadataResponse>`)

	rows, columns := Normalize(results, false)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"fullName", "manageableState"}, columns)

	assert.Equal(t, "unmanaged", rows[0]["manageableState"])

	// Absent on the wire means an explicit null marker, never a missing
	// key.
	value, present := rows[1]["manageableState"]
	require.True(t, present)
	assert.True(t, force.IsNull(value))
}

func TestNormalize_NestedRecords(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "readMetadata",
		`<readMetadataResponse><result>`+
			`<records>`+
			`<fullName>Obj__c</fullName>`+
			`<nameField><label>Name</label><type>Text</type></nameField>`+
			`</records>`+
			`</result></readMetadataResponse>`)

	rows, _ := Normalize(results, false)
	require.Len(t, rows, 1)

	nested, ok := rows[0]["nameField"].(force.ResultRecord)
	require.True(t, ok)
	assert.Equal(t, "Name", nested["label"])
	assert.Equal(t, "Text", nested["type"])
}

func TestNormalize_RepeatedChildrenBecomeSlices(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "readMetadata",
		`<readMetadataResponse><result>`+
			`<records>`+
			`<fullName>Status__c</fullName>`+
			`<values>Open</values>`+
			`<values>Closed</values>`+
			`</records>`+
			`</result></readMetadataResponse>`)

	rows, _ := Normalize(results, false)
	require.Len(t, rows, 1)

	values, ok := rows[0]["values"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Open", "Closed"}, values)
}

func TestNormalize_FlattenDottedKeys(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "cancelDeploy",
		`<cancelDeployResponse><result>`+
			`<done>false</done>`+
			`<id>0Af000000000001</id>`+
			`</result></cancelDeployResponse>`)

	rows, columns := Normalize(results, true)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"done", "id"}, columns)
	assert.Equal(t, "false", rows[0]["done"])
}

func TestNormalize_LeafResult(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "deployRecentValidation",
		`<deployRecentValidationResponse>`+
			`<result>0Af000000000002</result>`+
			`</deployRecentValidationResponse>`)

	rows, columns := Normalize(results, false)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"result"}, columns)
	assert.Equal(t, "0Af000000000002", rows[0]["result"])
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	rows, columns := Normalize(nil, false)
	assert.Empty(t, rows)
	assert.Empty(t, columns)
}

func TestNormalize_ColumnsInWireOrder(t *testing.T) {
	t.Parallel()

	results := parseResults(t, "listMetadata",
		`<listMetadataResponse>`+
			`<result><createdByName>admin</createdByName><fullName>A__c</fullName></result>`+
			`<result><fullName>B__c</fullName><lastModifiedByName>dev</lastModifiedByName></result>`+
			`</listMetadataResponse>`)

	_, columns := Normalize(results, false)
	assert.Equal(t, []string{"createdByName", "fullName", "lastModifiedByName"}, columns)
}
