package catalog

import (
	"fmt"
	"net/url"

	"github.com/rohmanhakim/ikea-catalog/pkg/itemno"
)

// candidateResult is the outcome of validating one search candidate:
// either a keepable item or a drop reason. Exactly one of the two is set.
type candidateResult struct {
	item SearchResultItem
	// empty when the candidate is kept
	drop string
}

// validateCandidate checks one product document for the required
// display fields. A candidate missing any of them is dropped, not errored.
func validateCandidate(p productDocument) candidateResult {
	required := []struct {
		field string
		value string
	}{
		{"itemNo", p.ItemNo},
		{"mainImageUrl", p.MainImageURL},
		{"mainImageAlt", p.MainImageAlt},
		{"pipUrl", p.PipURL},
	}
	for _, check := range required {
		if check.value == "" {
			return candidateResult{
				drop: fmt.Sprintf("missing %s", check.field),
			}
		}
	}
	if !itemno.IsItemNo(p.ItemNo) {
		return candidateResult{
			drop: "malformed itemNo",
		}
	}
	return candidateResult{
		item: SearchResultItem{
			ItemNo:       p.ItemNo,
			Name:         p.Name,
			MainImageURL: p.MainImageURL,
			MainImageAlt: p.MainImageAlt,
			PipURL:       p.PipURL,
		},
	}
}

// Search queries the search index for products matching query. A query
// that is itself an item number requests exactly one exact-match result;
// free text requests up to 24 with autocorrection and tree-navigation
// subcategories.
//
// Candidates missing a required field, or for which no 3D model exists,
// are dropped and recorded; they never fail the call. A failure of the
// search request itself, or of an existence check, aborts the whole call.
// An empty result is success.
func (c *Client) Search(query string) ([]SearchResultItem, error) {
	const op = "search"

	params := url.Values{}
	params.Set("types", "PRODUCT")
	params.Set("q", query)
	params.Set("c", "sr")
	params.Set("v", searchAPIVersion)
	if itemno.IsItemNo(query) {
		params.Set("size", "1")
	} else {
		params.Set("size", freeTextSearchSize)
		params.Set("autocorrect", "true")
		params.Set("subcategories-style", "tree-navigation")
	}

	searchURL := fmt.Sprintf("%s/%s/%s/search-result-page",
		c.endpoints.search, c.country, c.language)

	var doc searchResponse
	if err := c.getJSON(op, query, searchURL, params, false, &doc); err != nil {
		return nil, err
	}

	candidates := doc.SearchResultPage.Products.Main.Items
	results := make([]SearchResultItem, 0, len(candidates))
	for _, entry := range candidates {
		outcome := validateCandidate(entry.Product)
		if outcome.drop != "" {
			c.sink.RecordDrop(entry.Product.ItemNo, entry.Product.Name, outcome.drop)
			continue
		}

		exists, err := c.GetExists(outcome.item.ItemNo)
		if err != nil {
			// Only a negative existence answer is tolerated per item;
			// a failing existence check aborts the search.
			return nil, err
		}
		if !exists {
			c.sink.RecordDrop(outcome.item.ItemNo, outcome.item.Name, "no model available")
			continue
		}

		results = append(results, outcome.item)
	}

	return results, nil
}
