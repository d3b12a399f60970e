// Package dtrace narrows the OpenTelemetry tracing API
// to the pieces this module uses.
package dtrace

import (
	"encoding/hex"

	otelattr "go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	otpnoop "go.opentelemetry.io/otel/trace/noop"
)

type TracerProvider = oteltrace.TracerProvider

type Tracer = oteltrace.Tracer

type Span = oteltrace.Span

type KeyValueAttr = otelattr.KeyValue

// TracerName is the instrumentation name for tracers created in this module.
const TracerName = "github.com/gordian-engine/william3"

// NopTracerProvider returns the otel no-op tracer provider.
// This is intended to use as a fallback when a nil tracer provider is given.
func NopTracerProvider() TracerProvider {
	return otpnoop.NewTracerProvider()
}

// WithAttributes is an alias to [oteltrace.WithAttributes]
// to allow consumers to only reference the dtrace package.
func WithAttributes(attrs ...KeyValueAttr) oteltrace.SpanStartEventOption {
	return oteltrace.WithAttributes(attrs...)
}

// HexAttr returns a string attribute holding the lowercase hex encoding of b.
func HexAttr(key string, b []byte) KeyValueAttr {
	return otelattr.String(key, hex.EncodeToString(b))
}

// SpanError sets the given span to error status,
// with detail from err.Error().
func SpanError(span Span, err error) {
	span.SetStatus(otelcodes.Error, err.Error())
}

// ErrorAttr returns an attribute with the key "err" and the value of err.Error(),
// for span events that accompany [SpanError].
func ErrorAttr(err error) KeyValueAttr {
	return otelattr.String("err", err.Error())
}

func ChunkIndexAttr(idx uint64) KeyValueAttr {
	return otelattr.Int64("william3.chunk.index", int64(idx))
}

func ChunkCountAttr(n uint64) KeyValueAttr {
	return otelattr.Int64("william3.chunk.count", int64(n))
}
