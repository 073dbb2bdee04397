package force

import (
	"context"
)

// Client is the top-level handle returned by forceclient constructors.
type Client interface {
	// Metadata returns the metadata operation surface.
	Metadata() MetadataClient

	// Session returns the live session. Callers may persist it and pass it
	// back through Config to skip the login round-trip.
	Session() *Session
}

// MetadataClient covers the Metadata API operation surface. All calls are
// synchronous request/response; the long-running retrieve and deploy
// operations return an async process id which the caller polls through the
// corresponding status check. Polling cadence, backoff, and cancellation are
// the caller's responsibility.
type MetadataClient interface {
	// CreateMetadata submits new components of one type. Rows report
	// per-component {fullName, success}; a row with success "false" is
	// data, not an error.
	CreateMetadata(ctx context.Context, typeName string, components []Record) (*Result, error)

	// ReadMetadata fetches full component definitions as nested records.
	ReadMetadata(ctx context.Context, typeName string, fullNames []string) (*Result, error)

	// UpdateMetadata replaces existing components.
	UpdateMetadata(ctx context.Context, typeName string, components []Record) (*Result, error)

	// UpsertMetadata creates or replaces components by fullName.
	UpsertMetadata(ctx context.Context, typeName string, components []Record) (*Result, error)

	// DeleteMetadata removes components by fullName. Argument order is
	// preserved on the wire.
	DeleteMetadata(ctx context.Context, typeName string, fullNames []string) (*Result, error)

	// RenameMetadata renames one component.
	RenameMetadata(ctx context.Context, typeName, oldFullName, newFullName string) (*Result, error)

	// DescribeMetadata lists the metadata types the organization exposes.
	DescribeMetadata(ctx context.Context) (*Result, error)

	// ListMetadata enumerates components for up to three type/folder
	// queries per call.
	ListMetadata(ctx context.Context, queries []ListQuery) (*Result, error)

	// Retrieve starts an export and returns the async process id.
	Retrieve(ctx context.Context, request RetrieveRequest) (string, error)

	// CheckRetrieveStatus reports retrieve progress. When the job is done
	// and succeeded and zipPath is non-empty, the embedded archive is
	// decoded and written to zipPath, which must end in ".zip".
	CheckRetrieveStatus(ctx context.Context, id, zipPath string) (*Result, error)

	// Deploy uploads the archive at zipPath and returns the async process
	// id.
	Deploy(ctx context.Context, zipPath string, options DeployOptions) (string, error)

	// CheckDeployStatus reports deploy progress, with per-component detail
	// when includeDetails is set.
	CheckDeployStatus(ctx context.Context, id string, includeDetails bool) (*Result, error)

	// CancelDeploy requests cancellation of an in-flight deploy.
	CancelDeploy(ctx context.Context, id string) (*Result, error)

	// DeployRecentValidation quick-deploys a previously validated package
	// and returns the deployment id.
	DeployRecentValidation(ctx context.Context, validationID string) (string, error)
}
