package regions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
)

// The shared regions dataset is a JS assignment of the form
// `window.<name> = [...];` whose right-hand side is a JSON array of
// regional sites with their localized entry URLs.
const defaultRegionsURL = "https://www.ikea.com/global/en/shared-data/regions.js"

// Map is siteName -> language -> site URL.
type Map map[string]map[string]string

type regionSite struct {
	SiteName       string `json:"siteName"`
	LocalizedSites []struct {
		Language string `json:"language"`
		URL      string `json:"url"`
	} `json:"localizedSites"`
}

type Fetcher struct {
	httpClient *http.Client
	regionsURL string
	sink       metadata.Sink
}

func NewFetcher(timeout time.Duration, sink metadata.Sink) Fetcher {
	return Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		regionsURL: defaultRegionsURL,
		sink:       sink,
	}
}

// NewFetcherForTest creates a Fetcher pointed at a test server.
func NewFetcherForTest(timeout time.Duration, sink metadata.Sink, regionsURL string) Fetcher {
	f := NewFetcher(timeout, sink)
	f.regionsURL = regionsURL
	return f
}

// Fetch downloads and parses the regions dataset.
func (f *Fetcher) Fetch() (Map, error) {
	startTime := time.Now()
	resp, err := f.httpClient.Get(f.regionsURL)
	if err != nil {
		regionsErr := &RegionsError{
			Message:   fmt.Sprintf("error fetching %s: %v", f.regionsURL, err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
		f.recordError(regionsErr)
		return nil, regionsErr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	f.sink.RecordRequest(f.regionsURL, resp.StatusCode, time.Since(startTime), len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		regionsErr := &RegionsError{
			Message:   fmt.Sprintf("HTTP %d for %s", resp.StatusCode, f.regionsURL),
			Retryable: resp.StatusCode >= 500,
			Cause:     ErrCauseUpstreamStatus,
		}
		f.recordError(regionsErr)
		return nil, regionsErr
	}
	if readErr != nil {
		regionsErr := &RegionsError{
			Message:   fmt.Sprintf("error reading %s: %v", f.regionsURL, readErr),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
		f.recordError(regionsErr)
		return nil, regionsErr
	}

	parsed, parseErr := parseDataset(body)
	if parseErr != nil {
		f.recordError(parseErr)
		return nil, parseErr
	}
	return parsed, nil
}

// parseDataset strips the JS assignment prefix and decodes the site array.
func parseDataset(body []byte) (Map, *RegionsError) {
	_, payload, found := strings.Cut(string(body), " = ")
	if !found {
		return nil, &RegionsError{
			Message:   "dataset is not a JS assignment",
			Retryable: false,
			Cause:     ErrCauseDecodeFailure,
		}
	}
	payload = strings.TrimSpace(payload)
	payload = strings.TrimSuffix(payload, ";")

	var sites []regionSite
	if err := json.Unmarshal([]byte(payload), &sites); err != nil {
		return nil, &RegionsError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseDecodeFailure,
		}
	}

	result := make(Map, len(sites))
	for _, site := range sites {
		languages := make(map[string]string, len(site.LocalizedSites))
		for _, localized := range site.LocalizedSites {
			languages[localized.Language] = localized.URL
		}
		result[site.SiteName] = languages
	}
	return result, nil
}

func (f *Fetcher) recordError(regionsErr *RegionsError) {
	cause := metadata.CauseUnknown
	switch regionsErr.Cause {
	case ErrCauseNetworkFailure:
		cause = metadata.CauseNetworkFailure
	case ErrCauseUpstreamStatus:
		cause = metadata.CauseUpstreamStatus
	case ErrCauseDecodeFailure:
		cause = metadata.CauseContentInvalid
	}
	f.sink.RecordError(
		time.Now(),
		"regions",
		"Fetcher.Fetch",
		cause,
		regionsErr.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, f.regionsURL),
		},
	)
}
