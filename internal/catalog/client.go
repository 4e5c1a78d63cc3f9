package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rohmanhakim/ikea-catalog/internal/cache"
	"github.com/rohmanhakim/ikea-catalog/internal/config"
	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/rohmanhakim/ikea-catalog/pkg/failure"
	"github.com/rohmanhakim/ikea-catalog/pkg/hashutil"
	"github.com/rohmanhakim/ikea-catalog/pkg/itemno"
)

/*
Responsibilities

- Translate search / metadata / existence / asset intents into GET
  requests against the correct upstream host
- Enforce per-host headers and the request timeout
- Parse and validate responses
- Consult the cache before any network call, populate it after

Request Semantics

- Every operation is cache-first; the return path always reads from the
  cache, even on a fresh miss that was just populated
- Strictly sequential: one request at a time, no retries
- Any status outside [200,300) is a transport failure
- Every failure crosses the boundary as a ClientError

The client never refreshes a populated cache entry; file presence is the
only validity signal.
*/
type Client struct {
	country   string
	language  string
	userAgent string

	httpClient *http.Client
	cache      *cache.Cache
	sink       metadata.Sink
	endpoints  endpoints
}

// New constructs a client scoped to the region in cfg. The region and the
// cache root are fixed for the client's lifetime.
func New(cfg config.Config, store *cache.Cache, sink metadata.Sink) *Client {
	return &Client{
		country:   cfg.Country(),
		language:  cfg.Language(),
		userAgent: cfg.UserAgent(),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		cache:     store,
		sink:      sink,
		endpoints: defaultEndpoints(),
	}
}

// NewClientForTest constructs a client whose upstream base URLs point at
// test servers. This allows test packages to exercise the full request
// path without touching the production hosts.
func NewClientForTest(
	cfg config.Config,
	store *cache.Cache,
	sink metadata.Sink,
	searchBase string,
	pipBase string,
	webAPIBase string,
) *Client {
	c := New(cfg, store, sink)
	c.endpoints = endpoints{
		search: searchBase,
		pip:    pipBase,
		webAPI: webAPIBase,
	}
	return c
}

// GetPIP returns the product-information-page document for an item,
// cache-first. The cached bytes are exactly what the upstream returned.
func (c *Client) GetPIP(itemNoArg string) (json.RawMessage, error) {
	const op = "pip"
	item, itemErr := c.compactItemNo(op, itemNoArg)
	if itemErr != nil {
		return nil, itemErr
	}

	if !c.cache.Has(item, cache.AssetPIP) {
		// Document path embeds the last three digits of the item number
		// as a shard prefix.
		pipURL := fmt.Sprintf("%s/%s/%s/products/%s/%s.json",
			c.endpoints.pip, c.country, c.language, item[5:], item)
		body, err := c.get(op, item, pipURL, nil, false)
		if err != nil {
			return nil, err
		}
		if !json.Valid(body) {
			return nil, c.errorf(op, item, ErrCauseDecodeFailure, false,
				"product document is not valid JSON")
		}
		if _, cerr := c.cache.Write(item, cache.AssetPIP, body); cerr != nil {
			return nil, c.wrapCacheError(op, item, cerr)
		}
	} else {
		c.sink.RecordCacheHit(item, string(cache.AssetPIP))
	}

	raw, cerr := c.cache.Read(item, cache.AssetPIP)
	if cerr != nil {
		return nil, c.wrapCacheError(op, item, cerr)
	}
	return json.RawMessage(raw), nil
}

// GetExists reports whether a 3D model exists for the item, cache-first.
// The raw upstream response is what gets cached.
func (c *Client) GetExists(itemNoArg string) (bool, error) {
	const op = "exists"
	item, itemErr := c.compactItemNo(op, itemNoArg)
	if itemErr != nil {
		return false, itemErr
	}

	if !c.cache.Has(item, cache.AssetExists) {
		existsURL := fmt.Sprintf("%s/%s/%s/rotera/data/exists/%s/",
			c.endpoints.webAPI, c.country, c.language, item)
		body, err := c.get(op, item, existsURL, nil, true)
		if err != nil {
			return false, err
		}
		var probe existsDocument
		if err := json.Unmarshal(body, &probe); err != nil {
			return false, c.errorf(op, item, ErrCauseDecodeFailure, false,
				"existence document: %v", err)
		}
		if _, cerr := c.cache.Write(item, cache.AssetExists, body); cerr != nil {
			return false, c.wrapCacheError(op, item, cerr)
		}
	} else {
		c.sink.RecordCacheHit(item, string(cache.AssetExists))
	}

	raw, cerr := c.cache.Read(item, cache.AssetExists)
	if cerr != nil {
		return false, c.wrapCacheError(op, item, cerr)
	}
	var doc existsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, c.errorf(op, item, ErrCauseDecodeFailure, false,
			"cached existence document: %v", err)
	}
	return doc.Exists, nil
}

// compactItemNo canonicalizes an item number argument, rejecting input
// that is not an 8-digit item number in either spelling.
func (c *Client) compactItemNo(op string, itemNoArg string) (string, failure.ClassifiedError) {
	if !itemno.IsItemNo(itemNoArg) {
		return "", c.errorf(op, itemNoArg, ErrCauseInvalidItemNo, false,
			"%q is not an item number", itemNoArg)
	}
	return itemno.Compact(itemNoArg), nil
}

// get issues one GET request and returns the response body. Requests to
// the web-API host carry the fixed client id and the descriptive user
// agent; no other host receives them.
func (c *Client) get(op string, subject string, rawURL string, params url.Values, webAPI bool) ([]byte, failure.ClassifiedError) {
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, c.errorf(op, subject, ErrCauseNetworkFailure, false,
			"failed to create request for %s: %v", requestURL, err)
	}
	if webAPI {
		req.Header.Set("X-Client-Id", clientID)
		req.Header.Set("User-Agent", c.userAgent)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientErr := c.errorf(op, subject, ErrCauseNetworkFailure, true,
			"error fetching %s: %v", requestURL, err)
		c.recordError(op, subject, clientErr, requestURL)
		return nil, clientErr
	}
	defer resp.Body.Close()

	body, readErr := readBody(resp)
	duration := time.Since(startTime)
	c.sink.RecordRequest(requestURL, resp.StatusCode, duration, len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		clientErr := c.errorf(op, subject, ErrCauseUpstreamStatus, resp.StatusCode >= 500,
			"HTTP %d %s for %s", resp.StatusCode, resp.Status, requestURL)
		c.recordError(op, subject, clientErr, requestURL)
		return nil, clientErr
	}
	if readErr != nil {
		return nil, c.errorf(op, subject, ErrCauseNetworkFailure, true,
			"error reading %s: %v", requestURL, readErr)
	}
	return body, nil
}

// getJSON issues one GET request and decodes the JSON body into target.
func (c *Client) getJSON(op string, subject string, rawURL string, params url.Values, webAPI bool, target any) failure.ClassifiedError {
	body, err := c.get(op, subject, rawURL, params, webAPI)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return c.errorf(op, subject, ErrCauseDecodeFailure, false,
			"decoding %s: %v", rawURL, err)
	}
	return nil
}

func (c *Client) errorf(op string, subject string, cause ClientErrorCause, retryable bool, format string, args ...any) *ClientError {
	return &ClientError{
		Op:        op,
		Subject:   subject,
		Message:   fmt.Sprintf(format, args...),
		Retryable: retryable,
		Cause:     cause,
	}
}

func (c *Client) wrapCacheError(op string, subject string, cerr failure.ClassifiedError) *ClientError {
	clientErr := &ClientError{
		Op:        op,
		Subject:   subject,
		Message:   cerr.Error(),
		Retryable: cerr.Severity() == failure.SeverityRecoverable,
		Cause:     ErrCauseCacheFailure,
	}
	c.recordError(op, subject, clientErr, "")
	return clientErr
}

func (c *Client) recordError(op string, subject string, clientErr *ClientError, requestURL string) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrItemNo, subject),
	}
	if requestURL != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrURL, requestURL))
	}
	c.sink.RecordError(
		time.Now(),
		"catalog",
		"Client."+op,
		mapClientErrorToMetadataCause(clientErr),
		clientErr.Error(),
		attrs,
	)
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// recordArtifact reports a freshly persisted binary with its content hash.
func (c *Client) recordArtifact(kind metadata.ArtifactKind, path string, data []byte) {
	contentHash, err := hashutil.Sum(data, hashutil.AlgoBLAKE3)
	if err != nil {
		contentHash = ""
	}
	c.sink.RecordArtifact(kind, path, contentHash)
}
