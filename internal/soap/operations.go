package soap

// Operation describes the wire layout of one SOAP call: where its result
// elements live under <name>Response, where its application-level fault
// node lives, and how its results normalize.
//
// The fault position is not uniform across the API: the schema CRUD family
// nests errors under each result element, while the retrieve/deploy family
// and listMetadata report errors directly under the response element. The
// table records that variance as a fact of the wire format rather than
// special-casing it in code.
type Operation struct {
	// Name is both the payload element name and the SOAPAction value.
	Name string

	// ResultPath locates result elements relative to <Name>Response. At
	// each step every matching child is followed, so repeated result
	// elements all collect.
	ResultPath []string

	// FaultPath locates the application fault node relative to
	// <Name>Response. Empty means the operation has no application fault
	// position.
	FaultPath []string

	// Flatten selects wide-table normalization (CRUD confirmations) over
	// nested records (read/describe/list/status results).
	Flatten bool
}

var operations = map[string]Operation{
	"createMetadata": {
		Name:       "createMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"result", "errors"},
		Flatten:    true,
	},
	"readMetadata": {
		Name:       "readMetadata",
		ResultPath: []string{"result", "records"},
		FaultPath:  []string{"result", "errors"},
	},
	"updateMetadata": {
		Name:       "updateMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"result", "errors"},
		Flatten:    true,
	},
	"upsertMetadata": {
		Name:       "upsertMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"result", "errors"},
		Flatten:    true,
	},
	"deleteMetadata": {
		Name:       "deleteMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"result", "errors"},
		Flatten:    true,
	},
	"renameMetadata": {
		Name:       "renameMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"result", "errors"},
		Flatten:    true,
	},
	"describeMetadata": {
		Name:       "describeMetadata",
		ResultPath: []string{"result", "metadataObjects"},
		FaultPath:  []string{"errors"},
	},
	"listMetadata": {
		Name:       "listMetadata",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"retrieve": {
		Name:       "retrieve",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"checkRetrieveStatus": {
		Name:       "checkRetrieveStatus",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"deploy": {
		Name:       "deploy",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"checkDeployStatus": {
		Name:       "checkDeployStatus",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"cancelDeploy": {
		Name:       "cancelDeploy",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	"deployRecentValidation": {
		Name:       "deployRecentValidation",
		ResultPath: []string{"result"},
		FaultPath:  []string{"errors"},
	},
	// Partner API login, used by the auth collaborator. SOAP faults cover
	// its failure modes; there is no application fault position.
	"login": {
		Name:       "login",
		ResultPath: []string{"result"},
	},
}

// Lookup returns the descriptor for a named operation.
func Lookup(name string) (Operation, bool) {
	op, ok := operations[name]

	return op, ok
}
