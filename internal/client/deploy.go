package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/internal/soap"
	"github.com/trestletech/goforce/pkg/force"
)

// asyncID extracts the async process id a long-running operation returns.
// Retrieve and deploy report it as an id field; deployRecentValidation
// returns the id as the bare result text.
func asyncID(opName string, result *force.Result) (string, error) {
	if len(result.Rows) > 0 {
		if id, ok := result.Rows[0].GetString("id"); ok && id != "" {
			return id, nil
		}

		if id, ok := result.Rows[0].GetString("result"); ok && id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("%s: %w", opName, force.ErrAsyncIDMissing)
}

// Retrieve implements force.MetadataClient.Retrieve. It submits the
// request and returns the async process id; poll with CheckRetrieveStatus.
func (c *MetadataClient) Retrieve(ctx context.Context, request force.RetrieveRequest) (string, error) {
	apiVersion := request.APIVersion
	if apiVersion == "" {
		apiVersion = c.session.APIVersion
	}

	inner := force.Record{Fields: []force.Field{
		{Name: "apiVersion", Value: apiVersion},
		{Name: "singlePackage", Value: request.SinglePackage},
	}}

	if len(request.PackageNames) > 0 {
		inner.Fields = append(inner.Fields, force.Field{Name: "packageNames", Value: request.PackageNames})
	}

	if request.Unpackaged != nil {
		inner.Fields = append(inner.Fields, force.Field{
			Name:  "unpackaged",
			Value: manifestRecord(*request.Unpackaged),
		})
	}

	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "retrieveRequest", Value: inner},
	}}, "")
	if err != nil {
		return "", fmt.Errorf("building retrieve payload: %w", err)
	}

	result, err := c.call(ctx, "retrieve", payload)
	if err != nil {
		return "", err
	}

	return asyncID("retrieve", result)
}

// manifestRecord converts a package manifest into wire order: each types
// block lists members before the type name, then the version closes the
// manifest.
func manifestRecord(pkg force.Package) force.Record {
	rec := force.Record{}

	for _, t := range pkg.Types {
		rec.Fields = append(rec.Fields, force.Field{
			Name: "types",
			Value: force.Record{Fields: []force.Field{
				{Name: "members", Value: t.Members},
				{Name: "name", Value: t.Name},
			}},
		})
	}

	if pkg.Version != "" {
		rec.Fields = append(rec.Fields, force.Field{Name: "version", Value: pkg.Version})
	}

	return rec
}

// CheckRetrieveStatus implements force.MetadataClient.CheckRetrieveStatus.
// When zipPath is non-empty the zip payload is requested and, once the
// retrieve has succeeded, written to that path; the row's zipFile field
// then holds the path instead of the base64 blob.
func (c *MetadataClient) CheckRetrieveStatus(ctx context.Context, id, zipPath string) (*force.Result, error) {
	if zipPath != "" && !strings.HasSuffix(strings.ToLower(zipPath), ".zip") {
		return nil, fmt.Errorf("checkRetrieveStatus: %w: %q", force.ErrZipExtensionRequired, zipPath)
	}

	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "asyncProcessId", Value: id},
		{Name: "includeZip", Value: zipPath != ""},
	}}, "")
	if err != nil {
		return nil, fmt.Errorf("building checkRetrieveStatus payload: %w", err)
	}

	result, err := c.call(ctx, "checkRetrieveStatus", payload)
	if err != nil {
		return nil, err
	}

	if zipPath != "" && len(result.Rows) > 0 {
		if err := c.persistZip(result.Rows[0], zipPath); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// persistZip decodes and writes the zip payload of a finished retrieve.
// Rows without a zipFile field (still in progress, or a failed retrieve)
// pass through untouched.
func (c *MetadataClient) persistZip(row force.ResultRecord, zipPath string) error {
	encoded, ok := row.GetString("zipFile")
	if !ok || encoded == "" {
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding retrieved zip: %w", err)
	}

	if err := os.WriteFile(zipPath, data, constants.ArtifactFilePerm); err != nil {
		return fmt.Errorf("writing retrieved zip: %w", err)
	}

	c.logger.Info("wrote retrieved archive", map[string]interface{}{
		"path":  zipPath,
		"bytes": len(data),
	})

	row["zipFile"] = zipPath

	return nil
}

// Deploy implements force.MetadataClient.Deploy. The archive at zipPath is
// read and submitted whole; the returned async process id is polled with
// CheckDeployStatus.
func (c *MetadataClient) Deploy(ctx context.Context, zipPath string, options force.DeployOptions) (string, error) {
	data, err := os.ReadFile(zipPath)
	if err != nil {
		return "", fmt.Errorf("reading deploy archive: %w", err)
	}

	optionFields := []force.Field{
		{Name: "checkOnly", Value: options.CheckOnly},
		{Name: "ignoreWarnings", Value: options.IgnoreWarnings},
		{Name: "purgeOnDelete", Value: options.PurgeOnDelete},
		{Name: "rollbackOnError", Value: options.RollbackOnError},
		{Name: "singlePackage", Value: options.SinglePackage},
	}

	if options.TestLevel != "" {
		optionFields = append(optionFields, force.Field{Name: "testLevel", Value: options.TestLevel})
	}

	if len(options.RunTests) > 0 {
		optionFields = append(optionFields, force.Field{Name: "runTests", Value: options.RunTests})
	}

	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "ZipFile", Value: base64.StdEncoding.EncodeToString(data)},
		{Name: "DeployOptions", Value: force.Record{Fields: optionFields}},
	}}, "")
	if err != nil {
		return "", fmt.Errorf("building deploy payload: %w", err)
	}

	result, err := c.call(ctx, "deploy", payload)
	if err != nil {
		return "", err
	}

	return asyncID("deploy", result)
}

// CheckDeployStatus implements force.MetadataClient.CheckDeployStatus.
func (c *MetadataClient) CheckDeployStatus(ctx context.Context, id string, includeDetails bool) (*force.Result, error) {
	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "asyncProcessId", Value: id},
		{Name: "includeDetails", Value: includeDetails},
	}}, "")
	if err != nil {
		return nil, fmt.Errorf("building checkDeployStatus payload: %w", err)
	}

	return c.call(ctx, "checkDeployStatus", payload)
}

// CancelDeploy implements force.MetadataClient.CancelDeploy. Cancellation
// is asynchronous: the returned row's done field reports whether the
// cancel has already taken effect.
func (c *MetadataClient) CancelDeploy(ctx context.Context, id string) (*force.Result, error) {
	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "String", Value: id},
	}}, "")
	if err != nil {
		return nil, fmt.Errorf("building cancelDeploy payload: %w", err)
	}

	return c.call(ctx, "cancelDeploy", payload)
}

// DeployRecentValidation implements force.MetadataClient.DeployRecentValidation.
// It promotes an already validated deployment, skipping the test run.
func (c *MetadataClient) DeployRecentValidation(ctx context.Context, validationID string) (string, error) {
	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "validationId", Value: validationID},
	}}, "")
	if err != nil {
		return "", fmt.Errorf("building deployRecentValidation payload: %w", err)
	}

	result, err := c.call(ctx, "deployRecentValidation", payload)
	if err != nil {
		return "", err
	}

	return asyncID("deployRecentValidation", result)
}
