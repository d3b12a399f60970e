package w3proof_test

import (
	"context"
	"testing"

	"github.com/gordian-engine/william3"
	"github.com/gordian-engine/william3/internal/dtest"
	"github.com/gordian-engine/william3/w3proof"
	"github.com/gordian-engine/william3/william3test"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestVerifier_spans(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { require.NoError(t, tp.Shutdown(context.Background())) }()

	in := william3test.PatternData(2*1024 + 1)
	tree := w3proof.Build(in, william3.DefaultReducerConfig())
	v := w3proof.NewVerifier(dtest.NewLogger(t), w3proof.VerifierConfig{
		Root:           tree.Root(),
		Length:         uint64(len(in)),
		Reducer:        william3.DefaultReducerConfig(),
		TracerProvider: tp,
	})

	ctx := context.Background()
	require.NoError(t, v.VerifyChunkContext(ctx, 2, in[2048:], tree.Proof(2)))
	verifyErr := v.VerifyChunkContext(ctx, 1, in[:1024], tree.Proof(1))
	require.Error(t, verifyErr)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	require.Equal(t, "verify chunk", spans[0].Name())
	require.Contains(t, spans[0].Attributes(), attribute.Int64("william3.chunk.index", 2))
	require.Contains(t, spans[0].Attributes(), attribute.Int64("william3.chunk.count", 3))
	require.Contains(t, spans[0].Attributes(), attribute.String("william3.root", tree.Root().String()))
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Empty(t, spans[0].Events())

	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Contains(t, spans[1].Status().Description, "proof produced root")

	events := spans[1].Events()
	require.Len(t, events, 1)
	require.Equal(t, "chunk rejected", events[0].Name)
	require.Contains(t, events[0].Attributes, attribute.String("err", verifyErr.Error()))
}
