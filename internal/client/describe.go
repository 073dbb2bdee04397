package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/internal/soap"
	"github.com/trestletech/goforce/pkg/force"
)

// cachedResult is the wire form of a Result stored in a cache backend.
type cachedResult struct {
	Rows    []force.ResultRecord `json:"rows"`
	Columns []string             `json:"columns"`
}

// fromCache fetches a previously stored result. Misses and decode failures
// return nil; cache trouble never fails a call.
func (c *MetadataClient) fromCache(ctx context.Context, key string) *force.Result {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	var stored cachedResult
	if err := json.Unmarshal(entry.Data, &stored); err != nil {
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		_ = c.cache.Delete(ctx, key)

		return nil
	}

	return &force.Result{Rows: stored.Rows, Columns: stored.Columns}
}

// toCache stores a result. Failures are logged and ignored.
func (c *MetadataClient) toCache(ctx context.Context, key string, result *force.Result) {
	data, err := json.Marshal(cachedResult{Rows: result.Rows, Columns: result.Columns})
	if err != nil {
		c.logger.Warn("failed to encode cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		return
	}

	entry := &force.CacheEntry{Data: data}
	if c.cacheTTL > 0 {
		entry.ExpiresAt = time.Now().Add(c.cacheTTL)
	}

	if err := c.cache.Set(ctx, key, entry); err != nil {
		c.logger.Warn("failed to store cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// DescribeMetadata implements force.MetadataClient.DescribeMetadata.
// Results are cached per instance and API version; the org's type catalog
// changes only on release upgrades.
func (c *MetadataClient) DescribeMetadata(ctx context.Context) (*force.Result, error) {
	key := "describe:" + c.session.InstanceURL + ":" + c.session.APIVersion

	if cached := c.fromCache(ctx, key); cached != nil {
		c.logger.Debug("describe cache hit", map[string]interface{}{"key": key})

		return cached, nil
	}

	payload, err := soap.Build(force.Record{Fields: []force.Field{
		{Name: "asOfVersion", Value: c.session.APIVersion},
	}}, "")
	if err != nil {
		return nil, fmt.Errorf("building describe payload: %w", err)
	}

	result, err := c.call(ctx, "describeMetadata", payload)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, key, result)

	return result, nil
}

// ListMetadata implements force.MetadataClient.ListMetadata. At most
// three queries are accepted per call, matching the platform limit.
func (c *MetadataClient) ListMetadata(ctx context.Context, queries []force.ListQuery) (*force.Result, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("listMetadata: %w", force.ErrListQueryRequired)
	}

	if len(queries) > constants.MaxListQueries {
		return nil, fmt.Errorf("listMetadata: %w: got %d, limit %d",
			force.ErrTooManyListQueries, len(queries), constants.MaxListQueries)
	}

	key := listCacheKey(c.session, queries)

	if cached := c.fromCache(ctx, key); cached != nil {
		c.logger.Debug("list cache hit", map[string]interface{}{"key": key})

		return cached, nil
	}

	rec := force.Record{}
	for _, q := range queries {
		queryFields := []force.Field{{Name: "type", Value: q.Type}}
		if q.Folder != "" {
			queryFields = append(queryFields, force.Field{Name: "folder", Value: q.Folder})
		}

		rec.Fields = append(rec.Fields, force.Field{
			Name:  "queries",
			Value: force.Record{Fields: queryFields},
		})
	}

	rec.Fields = append(rec.Fields, force.Field{Name: "asOfVersion", Value: c.session.APIVersion})

	payload, err := soap.Build(rec, "")
	if err != nil {
		return nil, fmt.Errorf("building list payload: %w", err)
	}

	result, err := c.call(ctx, "listMetadata", payload)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, key, result)

	return result, nil
}

func listCacheKey(session *force.Session, queries []force.ListQuery) string {
	parts := make([]string, 0, len(queries)+2)
	parts = append(parts, "list", session.InstanceURL+":"+session.APIVersion)

	for _, q := range queries {
		parts = append(parts, q.Type+"/"+q.Folder)
	}

	return strings.Join(parts, ":")
}
