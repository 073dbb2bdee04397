package force

// Session identifies an authenticated connection to a Salesforce
// organization. It is immutable once obtained: every operation re-reads the
// token from the session it was given, and no part of the library mutates it.
type Session struct {
	InstanceURL string `json:"instance_url" yaml:"instance_url"`
	SessionID   string `json:"session_id"   yaml:"session_id"`
	APIVersion  string `json:"api_version"  yaml:"api_version"`
}

// Field is a single named value inside a Record. Values may be scalars
// (string, bool, integer, float), nested Records, []Record, []string, or a
// Table.
type Field struct {
	Name  string
	Value interface{}
}

// Record is an ordered collection of named fields, the input form of one
// metadata component. Field order is preserved through serialization. Type,
// when set, names the concrete metadata subtype and is emitted as an
// xsi:type attribute; it is required when components of different types are
// submitted as siblings in one request.
type Record struct {
	Type   string
	Fields []Field
}

// FieldNames returns the record's field names in declaration order.
func (r Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}

	return names
}

// Table is a rectangular rows-by-columns input. Every row serializes to a
// structurally identical record: short rows are padded with empty values so
// the remote schema sees the same field set on each sibling.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// NullValue is the explicit marker for a field that was absent on a
// particular result record. Normalized rows are rectangular: a field missing
// on the wire becomes Null, never a missing key.
type NullValue struct{}

// Null is the canonical null marker value.
var Null = NullValue{}

func (NullValue) String() string {
	return "<null>"
}

// IsNull reports whether v is the null marker.
func IsNull(v interface{}) bool {
	_, ok := v.(NullValue)

	return ok
}

// ResultRecord is one normalized result row. Values are strings, nested
// ResultRecords, slices of either, or Null.
type ResultRecord map[string]interface{}

// GetString returns the named field as a string. The second return is false
// when the field is absent, null, or not a scalar.
func (r ResultRecord) GetString(name string) (string, bool) {
	v, ok := r[name]
	if !ok || IsNull(v) {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Success reports whether the row's "success" field is "true". Rows from
// operations that do not report per-item success return false.
func (r ResultRecord) Success() bool {
	s, ok := r.GetString("success")

	return ok && s == "true"
}

// Result is the normalized outcome of one metadata call: rectangular rows
// plus the column names in first-seen wire order.
type Result struct {
	Rows    []ResultRecord
	Columns []string
}

// ListQuery selects one metadata type (and, for foldered types such as
// reports and dashboards, one folder) for ListMetadata.
type ListQuery struct {
	Type   string
	Folder string
}

// PackageTypeMembers names the members of one metadata type inside a package
// manifest. Member order is preserved on the wire.
type PackageTypeMembers struct {
	Name    string
	Members []string
}

// Package is an unpackaged manifest for retrieve requests.
type Package struct {
	Types   []PackageTypeMembers
	Version string
}

// RetrieveRequest describes a retrieve call. Zero-value fields fall back to
// the session's API version and an empty manifest.
type RetrieveRequest struct {
	APIVersion    string
	SinglePackage bool
	PackageNames  []string
	Unpackaged    *Package
}

// DeployOptions controls a deploy call. The zero value requests a real
// deployment with rollback on error.
type DeployOptions struct {
	CheckOnly       bool
	IgnoreWarnings  bool
	PurgeOnDelete   bool
	RollbackOnError bool
	SinglePackage   bool
	TestLevel       string
	RunTests        []string
}
