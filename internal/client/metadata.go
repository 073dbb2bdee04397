package client

import (
	"context"
	"fmt"
	"time"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/internal/fields"
	"github.com/trestletech/goforce/internal/soap"
	"github.com/trestletech/goforce/internal/transport"
	"github.com/trestletech/goforce/pkg/force"
)

// MetadataClient implements force.MetadataClient.
type MetadataClient struct {
	session  *force.Session
	invoker  transport.Invoker
	logger   force.Logger
	cache    force.Cache
	cacheTTL time.Duration
}

// NewMetadataClient creates a new metadata client.
func NewMetadataClient(session *force.Session, invoker transport.Invoker, logger force.Logger, cache force.Cache, cacheTTL time.Duration) *MetadataClient {
	return &MetadataClient{
		session:  session,
		invoker:  invoker,
		logger:   logger,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (c *MetadataClient) endpoint() string {
	return c.session.InstanceURL + constants.MetadataPath(c.session.APIVersion)
}

// call runs the full pipeline for one operation: serialize the payload
// node, wrap it in an envelope with the current session token, invoke the
// transport, parse for faults, and normalize the results.
func (c *MetadataClient) call(ctx context.Context, opName string, payload soap.Node) (*force.Result, error) {
	op, ok := soap.Lookup(opName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", force.ErrUnknownOperation, opName)
	}

	fragment := soap.Serialize(payload, op.Name, constants.MetadataNamespace)
	envelope := soap.Envelope(c.session.SessionID, fragment)

	body, err := c.invoker.Invoke(ctx, c.endpoint(), op.Name, []byte(envelope))
	if err != nil {
		return nil, fmt.Errorf("invoking %s: %w", opName, err)
	}

	results, err := soap.Parse(op, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opName, err)
	}

	rows, columns := soap.Normalize(results, op.Flatten)

	return &force.Result{Rows: rows, Columns: columns}, nil
}

// componentPayload builds the shared payload shape of the create, update,
// and upsert operations: repeated <metadata> siblings, each tagged with the
// component type. Field names are checked against the permitted-fields
// table first; unknown names are logged and the call proceeds.
func (c *MetadataClient) componentPayload(typeName string, components []force.Record) (soap.Node, error) {
	items := make([]soap.Node, len(components))

	for i, component := range components {
		if unknown := fields.Unknown(typeName, component.FieldNames()); len(unknown) > 0 {
			c.logger.Warn("unrecognized metadata fields", map[string]interface{}{
				"type":   typeName,
				"fields": unknown,
			})
		}

		node, err := soap.Build(component, typeName)
		if err != nil {
			return soap.Node{}, fmt.Errorf("component %d: %w", i, err)
		}

		items[i] = node
	}

	return soap.Node{
		Kind: soap.RecordNode,
		Fields: []soap.FieldNode{
			{Name: "metadata", Value: soap.Node{Kind: soap.ListNode, Items: items}},
		},
	}, nil
}

// namesPayload builds the shared payload shape of the read and delete
// operations: a type element followed by repeated fullNames siblings in
// argument order.
func namesPayload(typeName string, fullNames []string) (soap.Node, error) {
	rec := force.Record{Fields: []force.Field{
		{Name: "type", Value: typeName},
		{Name: "fullNames", Value: fullNames},
	}}

	return soap.Build(rec, "")
}

// CreateMetadata implements force.MetadataClient.CreateMetadata.
func (c *MetadataClient) CreateMetadata(ctx context.Context, typeName string, components []force.Record) (*force.Result, error) {
	payload, err := c.componentPayload(typeName, components)
	if err != nil {
		return nil, fmt.Errorf("building create payload: %w", err)
	}

	return c.call(ctx, "createMetadata", payload)
}

// ReadMetadata implements force.MetadataClient.ReadMetadata.
func (c *MetadataClient) ReadMetadata(ctx context.Context, typeName string, fullNames []string) (*force.Result, error) {
	payload, err := namesPayload(typeName, fullNames)
	if err != nil {
		return nil, fmt.Errorf("building read payload: %w", err)
	}

	return c.call(ctx, "readMetadata", payload)
}

// UpdateMetadata implements force.MetadataClient.UpdateMetadata.
func (c *MetadataClient) UpdateMetadata(ctx context.Context, typeName string, components []force.Record) (*force.Result, error) {
	payload, err := c.componentPayload(typeName, components)
	if err != nil {
		return nil, fmt.Errorf("building update payload: %w", err)
	}

	return c.call(ctx, "updateMetadata", payload)
}

// UpsertMetadata implements force.MetadataClient.UpsertMetadata.
func (c *MetadataClient) UpsertMetadata(ctx context.Context, typeName string, components []force.Record) (*force.Result, error) {
	payload, err := c.componentPayload(typeName, components)
	if err != nil {
		return nil, fmt.Errorf("building upsert payload: %w", err)
	}

	return c.call(ctx, "upsertMetadata", payload)
}

// DeleteMetadata implements force.MetadataClient.DeleteMetadata.
func (c *MetadataClient) DeleteMetadata(ctx context.Context, typeName string, fullNames []string) (*force.Result, error) {
	payload, err := namesPayload(typeName, fullNames)
	if err != nil {
		return nil, fmt.Errorf("building delete payload: %w", err)
	}

	return c.call(ctx, "deleteMetadata", payload)
}

// RenameMetadata implements force.MetadataClient.RenameMetadata.
func (c *MetadataClient) RenameMetadata(ctx context.Context, typeName, oldFullName, newFullName string) (*force.Result, error) {
	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "type", Value: typeName},
		{Name: "oldFullName", Value: oldFullName},
		{Name: "newFullName", Value: newFullName},
	}}, "")
	if err != nil {
		return nil, fmt.Errorf("building rename payload: %w", err)
	}

	return c.call(ctx, "renameMetadata", payload)
}
