package catalog

import (
	"fmt"

	"github.com/rohmanhakim/ikea-catalog/internal/cache"
	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/rohmanhakim/ikea-catalog/pkg/itemno"
)

// GetModel returns the path to the cached GLB model for an item,
// downloading it on a cache miss.
//
// On a miss the existence service is consulted first; a negative answer
// is an error, never a silent success. Otherwise the model metadata
// document supplies the binary URL, which is fetched and persisted. Two
// sequential dependent requests, no parallelism.
func (c *Client) GetModel(itemNoArg string) (string, error) {
	const op = "model"
	item, itemErr := c.compactItemNo(op, itemNoArg)
	if itemErr != nil {
		return "", itemErr
	}

	if c.cache.Has(item, cache.AssetModel) {
		c.sink.RecordCacheHit(item, string(cache.AssetModel))
		return c.cache.Path(item, cache.AssetModel), nil
	}

	exists, err := c.GetExists(item)
	if err != nil {
		return "", err
	}
	if !exists {
		clientErr := c.errorf(op, item, ErrCauseNoModel, false,
			"no model available for #%s", itemno.Format(item))
		c.recordError(op, item, clientErr, "")
		return "", clientErr
	}

	modelMetaURL := fmt.Sprintf("%s/%s/%s/rotera/data/model/%s/",
		c.endpoints.webAPI, c.country, c.language, item)
	var doc modelDocument
	if err := c.getJSON(op, item, modelMetaURL, nil, true, &doc); err != nil {
		return "", err
	}
	if doc.ModelURL == "" {
		return "", c.errorf(op, item, ErrCauseMissingField, false,
			"model document has no modelUrl")
	}

	data, getErr := c.get(op, item, doc.ModelURL, nil, false)
	if getErr != nil {
		return "", getErr
	}

	path, cerr := c.cache.Write(item, cache.AssetModel, data)
	if cerr != nil {
		return "", c.wrapCacheError(op, item, cerr)
	}
	c.recordArtifact(metadata.ArtifactModel, path, data)
	return path, nil
}

// GetThumbnail returns the path to the cached thumbnail for an item,
// downloading the given URL on a cache miss. The URL comes from a prior
// search result; no intermediate metadata request is made.
func (c *Client) GetThumbnail(itemNoArg string, imageURL string) (string, error) {
	const op = "thumbnail"
	item, itemErr := c.compactItemNo(op, itemNoArg)
	if itemErr != nil {
		return "", itemErr
	}

	if c.cache.Has(item, cache.AssetThumbnail) {
		c.sink.RecordCacheHit(item, string(cache.AssetThumbnail))
		return c.cache.Path(item, cache.AssetThumbnail), nil
	}

	data, err := c.get(op, item, imageURL, nil, false)
	if err != nil {
		return "", err
	}

	path, cerr := c.cache.Write(item, cache.AssetThumbnail, data)
	if cerr != nil {
		return "", c.wrapCacheError(op, item, cerr)
	}
	c.recordArtifact(metadata.ArtifactThumbnail, path, data)
	return path, nil
}
