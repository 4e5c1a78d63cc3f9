package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Request URLs, status codes, durations, transfer sizes
- Cache hits per item and asset
- Dropped search candidates with drop reason
- Persisted artifacts with content hash
- Classified errors

Determinism guarantees:
  - Metadata does not affect control flow
  - No component may read metadata to influence cache or request decisions

Metadata is write-only.
*/
type Sink interface {
	RecordRequest(
		requestUrl string,
		httpStatus int,
		duration time.Duration,
		sizeBytes int,
	)
	RecordCacheHit(itemNo string, asset string)
	RecordDrop(itemNo string, name string, reason string)
	RecordArtifact(kind ArtifactKind, path string, contentHash string)
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
}

// Recorder captures structured client events on a zerolog logger.
// It must not:
// - perform I/O decisions
// - affect control flow
// Events are recorded synchronously in the order they are received.
type Recorder struct {
	log zerolog.Logger
}

func NewRecorder(log zerolog.Logger) Recorder {
	return Recorder{
		log: log,
	}
}

func (r *Recorder) RecordRequest(
	requestUrl string,
	httpStatus int,
	duration time.Duration,
	sizeBytes int,
) {
	r.log.Debug().
		Str("url", requestUrl).
		Int("status", httpStatus).
		Dur("duration", duration).
		Int("bytes", sizeBytes).
		Msg("request")
}

func (r *Recorder) RecordCacheHit(itemNo string, asset string) {
	r.log.Debug().
		Str("item_no", itemNo).
		Str("asset", asset).
		Msg("cache hit")
}

func (r *Recorder) RecordDrop(itemNo string, name string, reason string) {
	r.log.Info().
		Str("item_no", itemNo).
		Str("name", name).
		Str("reason", reason).
		Msg("search candidate dropped")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, contentHash string) {
	r.log.Info().
		Str("kind", string(kind)).
		Str("path", path).
		Str("content_hash", contentHash).
		Msg("artifact written")
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	evt := r.log.Error().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Str("cause", cause.String()).
		Str("details", details)
	for _, attr := range attrs {
		evt = evt.Str(string(attr.Key()), attr.Value())
	}
	evt.Msg("client error")
}

// NoopSink implements Sink but does nothing.
// Callers (or tests) decide whether to inject Recorder or NoopSink;
// the purpose is to keep metadata orthogonal.
type NoopSink struct{}

func (NoopSink) RecordRequest(string, int, time.Duration, int)                          {}
func (NoopSink) RecordCacheHit(string, string)                                          {}
func (NoopSink) RecordDrop(string, string, string)                                      {}
func (NoopSink) RecordArtifact(ArtifactKind, string, string)                            {}
func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute) {}
