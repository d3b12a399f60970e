package w3vector_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gordian-engine/william3"
	"github.com/gordian-engine/william3/w3vector"
	"github.com/gordian-engine/william3/william3test"
	"github.com/stretchr/testify/require"
)

func TestDefaultCases_matchReferenceVectors(t *testing.T) {
	t.Parallel()

	cases := w3vector.DefaultCases()
	require.Len(t, cases, 11)

	// The default cases are the published vectors
	// followed by the two chunk vectors, minus the fox text.
	want := william3test.PublishedVectors()
	want = append(want, william3test.TwoChunkVectors()[:5]...)

	vs := w3vector.Generate(cases, william3.BatchHash)
	require.Len(t, vs, len(want))
	for i, v := range vs {
		require.Equal(t, want[i].Description, v.Description)
		require.Equal(t, want[i].Hex, v.ExpectedHash.String(), v.Description)
		require.Equal(t, want[i].Input, []byte(v.InputBytes))
	}
}

func TestInputText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", w3vector.InputText(nil))
	require.Equal(t, "hello", w3vector.InputText([]byte("hello")))

	exact := strings.Repeat("z", 100)
	require.Equal(t, exact, w3vector.InputText([]byte(exact)))

	long := bytes.Repeat([]byte("a"), 256)
	require.Equal(t,
		strings.Repeat("a", 100)+"... (256 bytes total)",
		w3vector.InputText(long),
	)

	// "é" is two bytes starting at byte 99, so it is dropped whole.
	accented := strings.Repeat("a", 99) + "é" + strings.Repeat("b", 10)
	got := w3vector.InputText([]byte(accented))
	require.Equal(t, strings.Repeat("a", 99)+"... (111 bytes total)", got)
	require.True(t, utf8.ValidString(got))

	// A rune ending exactly at byte 100 is kept.
	edge := strings.Repeat("a", 98) + "é" + "bbb"
	require.Equal(t,
		strings.Repeat("a", 98)+"é... (103 bytes total)",
		w3vector.InputText([]byte(edge)),
	)

	// Bytes that are not valid UTF-8 are cut at 100 as before.
	bin := bytes.Repeat([]byte{0xe9}, 120)
	require.Equal(t,
		string(bin[:100])+"... (120 bytes total)",
		w3vector.InputText(bin),
	)
}

func TestByteList_json(t *testing.T) {
	t.Parallel()

	j, err := json.Marshal(w3vector.ByteList("hi"))
	require.NoError(t, err)
	require.Equal(t, `[104,105]`, string(j))

	j, err = json.Marshal(w3vector.ByteList{})
	require.NoError(t, err)
	require.Equal(t, `[]`, string(j))

	var b w3vector.ByteList
	require.NoError(t, json.Unmarshal([]byte(`[0, 255, 7]`), &b))
	require.Equal(t, w3vector.ByteList{0, 255, 7}, b)

	require.ErrorContains(t, json.Unmarshal([]byte(`[256]`), &b), "not a byte")
	require.ErrorContains(t, json.Unmarshal([]byte(`[-1]`), &b), "not a byte")
	require.Error(t, json.Unmarshal([]byte(`"aGk="`), &b))
}

func TestWriteRead_roundTrip(t *testing.T) {
	t.Parallel()

	vs := w3vector.Generate(w3vector.DefaultCases(), william3.BatchHash)

	var buf bytes.Buffer
	require.NoError(t, w3vector.Write(&buf, vs))

	// Two space indentation, with snake case keys.
	require.Contains(t, buf.String(), "\n  {\n    \"description\": \"empty string\",")
	require.Contains(t, buf.String(), `"expected_hash": "3b638fc8f2fb68418325a36b4718ffb07de457ac301393a845466a79eea3286b"`)

	got, err := w3vector.Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(vs))
	for i := range vs {
		require.Equal(t, vs[i].Description, got[i].Description)
		require.Equal(t, vs[i].InputText, got[i].InputText)
		require.Equal(t, []byte(vs[i].InputBytes), []byte(got[i].InputBytes))
		require.Equal(t, vs[i].ExpectedHash, got[i].ExpectedHash)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_error(t *testing.T) {
	t.Parallel()

	err := w3vector.Write(failWriter{}, w3vector.Generate(w3vector.DefaultCases(), william3.BatchHash))
	require.ErrorContains(t, err, "disk full")
}

func TestRead_errors(t *testing.T) {
	t.Parallel()

	_, err := w3vector.Read(strings.NewReader(`[{"expected_hash": "abc"}]`))
	require.Error(t, err)

	_, err = w3vector.Read(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	vs := w3vector.Generate(w3vector.DefaultCases(), william3.BatchHash)
	require.Empty(t, w3vector.Check(vs, william3.BatchHash))

	vs[3].ExpectedHash[0] ^= 1
	vs[7].InputBytes = append(w3vector.ByteList(nil), vs[6].InputBytes...)

	ms := w3vector.Check(vs, william3.BatchHash)
	require.Len(t, ms, 2)
	require.Equal(t, 3, ms[0].Index)
	require.Equal(t, "hello world", ms[0].Description)
	require.Equal(t, william3.BatchHash([]byte("hello world")), ms[0].Got)
	require.Equal(t, 7, ms[1].Index)
	require.Contains(t, ms[1].String(), "1024 bytes of 'b'")
}

func TestCheck_otherShape(t *testing.T) {
	t.Parallel()

	// The default cases are all at most two chunks,
	// so they also hold under the left-complete shape.
	cfg := william3.DefaultReducerConfig()
	cfg.Shape = william3.ShapeLeftComplete
	r := william3.NewReducer(cfg)

	vs := w3vector.Generate(w3vector.DefaultCases(), william3.BatchHash)
	require.Empty(t, w3vector.Check(vs, r.Reduce))
}
