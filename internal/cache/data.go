package cache

// Asset names one of the files an item's cache directory may hold.
// The value is the filename inside <root>/<itemNo>/.
type Asset string

const (
	AssetPIP       Asset = "pip.json"
	AssetExists    Asset = "exists.json"
	AssetThumbnail Asset = "thumbnail.jpg"
	AssetModel     Asset = "model.glb"
)
