package metadata

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, reporting).

Rules:
  - ErrorCause is for observability only.
  - ErrorCause MUST NOT influence control flow.
  - Client packages MAY map their local errors to ErrorCause,
    but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// CauseUnknown: the failure does not map cleanly to any known category.
	CauseUnknown ErrorCause = iota
	// CauseNetworkFailure: transport failure or remote unavailability.
	CauseNetworkFailure
	// CauseUpstreamStatus: the upstream answered with a non-2xx status.
	CauseUpstreamStatus
	// CauseContentInvalid: a response was received but could not be
	// parsed, or a required field was absent.
	CauseContentInvalid
	// CauseStorageFailure: failure while persisting a cache entry.
	CauseStorageFailure
	// CauseNoModel: the upstream reports that no 3D model exists for
	// the requested item.
	CauseNoModel
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseUpstreamStatus:
		return "upstream_status"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseNoModel:
		return "no_model"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactMetadata  ArtifactKind = "metadata"
	ArtifactModel     ArtifactKind = "model"
	ArtifactThumbnail ArtifactKind = "thumbnail"
	ArtifactRegions   ArtifactKind = "regions"
)

type AttrKey string

const (
	AttrURL       AttrKey = "url"
	AttrItemNo    AttrKey = "item_no"
	AttrQuery     AttrKey = "query"
	AttrWritePath AttrKey = "write_path"
	AttrMessage   AttrKey = "message"
)

type Attribute struct {
	key   AttrKey
	value string
}

func NewAttr(key AttrKey, value string) Attribute {
	return Attribute{
		key:   key,
		value: value,
	}
}

func (a Attribute) Key() AttrKey {
	return a.key
}

func (a Attribute) Value() string {
	return a.value
}
