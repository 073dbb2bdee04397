// Package fields holds the permitted-field reference table for common
// metadata types. It backs advisory validation only: unknown fields produce
// warnings, never errors, and nothing here is enforced at the wire level.
package fields

// permitted maps a metadata type name to the field names it accepts. The
// table covers the types this library is commonly used with; types not
// listed produce no warnings at all.
var permitted = map[string][]string{
	"CustomObject": {
		"fullName", "label", "pluralLabel", "nameField", "deploymentStatus",
		"sharingModel", "description", "enableActivities", "enableHistory",
		"enableReports", "enableSearch", "enableFeeds", "enableBulkApi",
		"enableStreamingApi", "externalSharingModel", "recordTypeTrackHistory",
	},
	"CustomField": {
		"fullName", "label", "type", "length", "description", "defaultValue",
		"externalId", "formula", "formulaTreatBlanksAs", "inlineHelpText",
		"picklist", "valueSet", "precision", "referenceTo", "relationshipLabel",
		"relationshipName", "required", "scale", "unique", "visibleLines",
		"displayFormat", "trackHistory", "caseSensitive",
	},
	"CustomTab": {
		"fullName", "customObject", "label", "motif", "description", "url",
		"urlEncodingKey", "hasSidebar", "page", "scontrol",
	},
	"ValidationRule": {
		"fullName", "active", "description", "errorConditionFormula",
		"errorDisplayField", "errorMessage",
	},
	"ListView": {
		"fullName", "label", "booleanFilter", "columns", "division",
		"filterScope", "filters", "queue", "sharedTo",
	},
	"Layout": {
		"fullName", "layoutSections", "customButtons", "emailDefault",
		"excludeButtons", "headers", "miniLayout", "relatedLists",
		"relatedObjects", "runAssignmentRulesDefault", "showEmailCheckbox",
		"showHighlightsPanel", "showInteractionLogPanel",
		"showKnowledgeComponent", "showRunAssignmentRulesCheckbox",
		"showSolutionSection", "showSubmitAndAttachButton", "summaryLayout",
	},
	"Workflow": {
		"fullName", "alerts", "fieldUpdates", "flowActions", "knowledgePublishes",
		"outboundMessages", "rules", "tasks",
	},
	"ApexClass": {
		"fullName", "apiVersion", "content", "packageVersions", "status",
	},
}

// Known reports whether the oracle has data for a metadata type.
func Known(typeName string) bool {
	_, ok := permitted[typeName]

	return ok
}

// Unknown returns the subset of fieldNames the oracle does not recognize
// for typeName, preserving input order. Nil when the type itself is not in
// the table: no data means no opinion.
func Unknown(typeName string, fieldNames []string) []string {
	allowed, ok := permitted[typeName]
	if !ok {
		return nil
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}

	var unknown []string

	for _, name := range fieldNames {
		if !allowedSet[name] {
			unknown = append(unknown, name)
		}
	}

	return unknown
}
