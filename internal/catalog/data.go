package catalog

// Upstream surface

// This ID appears to be hard-coded in the website source code?
const clientID = "4863e7d2-1428-4324-890b-ae5dede24fc6"

// Protocol version of the search-result-page endpoint.
const searchAPIVersion = "20210322"

// Maximum number of results requested for a free-text query. An exact
// item-number query requests exactly one.
const freeTextSearchSize = "24"

// endpoints holds the base URLs of the three upstream services. Tests
// point these at local servers; production uses defaultEndpoints.
type endpoints struct {
	// search-result-page index
	search string
	// product-information-page store
	pip string
	// model existence / model URL service; the only host that receives
	// the client-id and descriptive user-agent headers
	webAPI string
}

func defaultEndpoints() endpoints {
	return endpoints{
		search: "https://sik.search.blue.cdtapps.com",
		pip:    "https://www.ikea.com",
		webAPI: "https://web-api.ikea.com",
	}
}

// SearchResultItem is one filtered product from a search. Constructed per
// query, never persisted. Only items with the required fields present and
// a confirmed 3D model make it into the result sequence.
type SearchResultItem struct {
	ItemNo       string `json:"itemNo"`
	Name         string `json:"name"`
	MainImageURL string `json:"mainImageUrl"`
	MainImageAlt string `json:"mainImageAlt"`
	PipURL       string `json:"pipUrl"`
}

// wire documents

type searchResponse struct {
	SearchResultPage struct {
		Products struct {
			Main struct {
				Items []searchResponseItem `json:"items"`
			} `json:"main"`
		} `json:"products"`
	} `json:"searchResultPage"`
}

type searchResponseItem struct {
	Product productDocument `json:"product"`
}

type productDocument struct {
	Name         string `json:"name"`
	ItemNo       string `json:"itemNo"`
	MainImageURL string `json:"mainImageUrl"`
	MainImageAlt string `json:"mainImageAlt"`
	PipURL       string `json:"pipUrl"`
}

type existsDocument struct {
	Exists bool `json:"exists"`
}

type modelDocument struct {
	ModelURL string `json:"modelUrl"`
}
