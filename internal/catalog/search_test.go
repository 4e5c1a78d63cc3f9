package catalog_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rohmanhakim/ikea-catalog/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProduct struct {
	Name         string `json:"name,omitempty"`
	ItemNo       string `json:"itemNo,omitempty"`
	MainImageURL string `json:"mainImageUrl,omitempty"`
	MainImageAlt string `json:"mainImageAlt,omitempty"`
	PipURL       string `json:"pipUrl,omitempty"`
}

// searchBody builds the nested search-result-page response wrapping the
// given products.
func searchBody(t *testing.T, products ...testProduct) []byte {
	t.Helper()
	type item struct {
		Product testProduct `json:"product"`
	}
	items := make([]item, 0, len(products))
	for _, p := range products {
		items = append(items, item{Product: p})
	}
	doc := map[string]any{
		"searchResultPage": map[string]any{
			"products": map[string]any{
				"main": map[string]any{
					"items": items,
				},
			},
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	return body
}

func completeProduct(itemNo string, name string) testProduct {
	return testProduct{
		Name:         name,
		ItemNo:       itemNo,
		MainImageURL: "https://img.example/" + itemNo + ".jpg",
		MainImageAlt: name + " alt",
		PipURL:       "https://pip.example/" + itemNo,
	}
}

// existsPerItem answers the existence endpoint per item number.
func existsPerItem(answers map[string]bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		itemNo := parts[len(parts)-1]
		if answers[itemNo] {
			w.Write([]byte(`{"exists": true}`))
			return
		}
		w.Write([]byte(`{"exists": false}`))
	}
}

func TestSearch_ItemNoQueryRequestsSingleExactMatch(t *testing.T) {
	var gotParams url.Values
	search := func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Write(searchBody(t))
	}
	f := newFixture(t, search, nil, nil)

	results, err := f.client.Search("123.456.78")
	require.NoError(t, err)
	assert.Empty(t, results, "no matches is success, not an error")

	assert.Equal(t, "1", gotParams.Get("size"))
	assert.Equal(t, "123.456.78", gotParams.Get("q"))
	assert.Equal(t, "PRODUCT", gotParams.Get("types"))
	assert.Equal(t, "sr", gotParams.Get("c"))
	assert.Equal(t, "20210322", gotParams.Get("v"))
	assert.False(t, gotParams.Has("autocorrect"), "exact lookup omits autocorrect")
	assert.False(t, gotParams.Has("subcategories-style"))
}

func TestSearch_FreeTextQueryRequestsUpTo24WithAutocorrect(t *testing.T) {
	var gotParams url.Values
	search := func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Write(searchBody(t))
	}
	f := newFixture(t, search, nil, nil)

	_, err := f.client.Search("billy bookcase")
	require.NoError(t, err)

	assert.Equal(t, "24", gotParams.Get("size"))
	assert.Equal(t, "true", gotParams.Get("autocorrect"))
	assert.Equal(t, "tree-navigation", gotParams.Get("subcategories-style"))
}

func TestSearch_DropsCandidateMissingMainImageAlt(t *testing.T) {
	missingAlt := completeProduct("11111111", "KALLAX")
	missingAlt.MainImageAlt = ""
	kept := completeProduct("22222222", "BILLY")

	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchBody(t, missingAlt, kept))
	}
	webAPI := existsPerItem(map[string]bool{"22222222": true})
	f := newFixture(t, search, nil, webAPI)

	results, err := f.client.Search("bookcase")
	require.NoError(t, err, "a malformed candidate must not fail the search")

	require.Len(t, results, 1)
	assert.Equal(t, "22222222", results[0].ItemNo)

	require.Len(t, f.sink.drops, 1)
	assert.Equal(t, "11111111", f.sink.drops[0].itemNo)
	assert.Equal(t, "missing mainImageAlt", f.sink.drops[0].reason)
}

func TestSearch_DropsCandidateWithoutModel(t *testing.T) {
	noModel := completeProduct("11111111", "KALLAX")
	withModel := completeProduct("22222222", "BILLY")

	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchBody(t, noModel, withModel))
	}
	webAPI := existsPerItem(map[string]bool{"22222222": true})
	f := newFixture(t, search, nil, webAPI)

	results, err := f.client.Search("bookcase")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "22222222", results[0].ItemNo)

	require.Len(t, f.sink.drops, 1)
	assert.Equal(t, "no model available", f.sink.drops[0].reason)
}

func TestSearch_PreservesCandidateOrder(t *testing.T) {
	products := []testProduct{
		completeProduct("11111111", "KALLAX"),
		completeProduct("22222222", "BILLY"),
		completeProduct("33333333", "LACK"),
	}
	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchBody(t, products...))
	}
	webAPI := existsPerItem(map[string]bool{
		"11111111": true,
		"22222222": true,
		"33333333": true,
	})
	f := newFixture(t, search, nil, webAPI)

	results, err := f.client.Search("shelf")
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "11111111", results[0].ItemNo)
	assert.Equal(t, "22222222", results[1].ItemNo)
	assert.Equal(t, "33333333", results[2].ItemNo)
}

func TestSearch_TransportFailureAbortsCall(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	f := newFixture(t, search, nil, nil)

	_, err := f.client.Search("bookcase")
	require.Error(t, err)

	var clientErr *catalog.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, "search", clientErr.Op)
	assert.Equal(t, "bookcase", clientErr.Subject)
}

func TestSearch_MalformedResponseAbortsCall(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}
	f := newFixture(t, search, nil, nil)

	_, err := f.client.Search("bookcase")
	require.Error(t, err)

	var clientErr *catalog.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, catalog.ErrCauseDecodeFailure, clientErr.Cause)
}

func TestSearch_ExistenceCheckFailurePropagates(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchBody(t, completeProduct("11111111", "KALLAX")))
	}
	webAPI := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	f := newFixture(t, search, nil, webAPI)

	_, err := f.client.Search("bookcase")
	require.Error(t, err, "only a negative answer is tolerated, not a failing check")
}
