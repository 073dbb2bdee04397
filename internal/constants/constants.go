package constants

import "time"

// Wire protocol namespaces.
const (
	// SOAPEnvelopeNamespace is the SOAP 1.1 envelope namespace.
	SOAPEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	// MetadataNamespace is the Metadata API payload namespace.
	MetadataNamespace = "http://soap.sforce.com/2006/04/metadata"

	// PartnerNamespace is the Partner API namespace used by login.
	PartnerNamespace = "urn:partner.soap.sforce.com"

	// XSINamespace backs xsi:type attributes on polymorphic components.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// XSDNamespace is declared alongside xsi on the envelope.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema"
)

// Endpoints.
const (
	// DefaultLoginURL is the production authentication host.
	DefaultLoginURL = "https://login.salesforce.com"

	// DefaultAPIVersion selects the versioned SOAP endpoints.
	DefaultAPIVersion = "60.0"

	// ContentTypeXML is the request content type for SOAP calls.
	ContentTypeXML = "text/xml; charset=UTF-8"
)

// MetadataPath returns the versioned Metadata API endpoint path.
func MetadataPath(apiVersion string) string {
	return "/services/Soap/m/" + apiVersion
}

// PartnerPath returns the versioned Partner API endpoint path used for
// login.
func PartnerPath(apiVersion string) string {
	return "/services/Soap/u/" + apiVersion
}

// HTTP and retry defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 60 * time.Second

	// DefaultRetryMax is the default maximum number of transport retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Async job states reported by retrieve and deploy status checks.
const (
	// StatusSucceeded is the terminal success state.
	StatusSucceeded = "Succeeded"

	// StatusFailed is the terminal failure state.
	StatusFailed = "Failed"

	// StatusCanceled is the terminal cancellation state.
	StatusCanceled = "Canceled"
)

// File permissions for persisted artifacts and CLI config.
const (
	// ArtifactFilePerm is the permission for written zip archives.
	ArtifactFilePerm = 0600

	// ConfigDirPerm is the permission for the CLI config directory.
	ConfigDirPerm = 0750
)

// ListMetadata accepts at most this many queries per call.
const MaxListQueries = 3
