package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/semjuel/instagram/internal/domain/errors"
)

func TestParseEmptyBody(t *testing.T) {
	for _, body := range []string{"", "  ", "null"} {
		out, err := Parse([]byte(body))
		require.NoError(t, err, "body %q", body)
		assert.Empty(t, out, "body %q", body)
	}
}

func TestParseMissingDataField(t *testing.T) {
	_, err := Parse([]byte(`{"meta":{"code":200}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domerrors.ErrMalformedFeed)
}

func TestParseEmptyDataList(t *testing.T) {
	out, err := Parse([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseNullDataValue(t *testing.T) {
	// The key is present, so the payload is not malformed; a null list is
	// just an empty feed.
	out, err := Parse([]byte(`{"data":null}`))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.ErrorIs(t, err, domerrors.ErrMalformedFeed)
}

func TestParseVideoType(t *testing.T) {
	out, err := Parse([]byte(`{"data":[{"id":"a1","type":"video","videos":{"standard_resolution":{"url":"https://cdn.example/v.mp4"}}}]}`))
	require.NoError(t, err)
	require.Len(t, out["a1"], 1)
	assert.Equal(t, Media{Kind: KindVideo}, out["a1"][0])
}

func TestParseUntypedVideoFallback(t *testing.T) {
	// Some feed items omit the type tag but still lack image data.
	out, err := Parse([]byte(`{"data":[{"id":"a2","videos":{"low_resolution":{"url":"https://cdn.example/v.mp4"}}}]}`))
	require.NoError(t, err)
	require.Len(t, out["a2"], 1)
	assert.Equal(t, KindVideo, out["a2"][0].Kind)
}

func TestParseImage(t *testing.T) {
	out, err := Parse([]byte(`{"data":[{"id":"a3","type":"image","images":{"standard_resolution":{"url":"https://cdn.example/p.jpg"}}}]}`))
	require.NoError(t, err)
	require.Len(t, out["a3"], 1)
	assert.Equal(t, Media{Kind: KindImage, URL: "https://cdn.example/p.jpg"}, out["a3"][0])
}

func TestParseCarouselOrdered(t *testing.T) {
	body := `{"data":[{"id":"c1","type":"carousel","carousel_media":[
		{"type":"image","images":{"standard_resolution":{"url":"https://cdn.example/1.jpg"}}},
		{"type":"video"},
		{"type":"image","images":{"standard_resolution":{"url":"https://cdn.example/3.jpg"}}}
	]}]}`
	out, err := Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, out["c1"], 3)
	assert.Equal(t, Media{Kind: KindImage, URL: "https://cdn.example/1.jpg"}, out["c1"][0])
	assert.Equal(t, Media{Kind: KindVideo}, out["c1"][1])
	assert.Equal(t, Media{Kind: KindImage, URL: "https://cdn.example/3.jpg"}, out["c1"][2])
}

func TestParseSkipsUnclassifiableEntry(t *testing.T) {
	// Not a video, no videos field, no standard-resolution URL: the entry is
	// dropped without aborting the parse.
	body := `{"data":[
		{"id":"bad","type":"image","images":{"thumbnail":{"url":"https://cdn.example/t.jpg"}}},
		{"id":"ok","type":"image","images":{"standard_resolution":{"url":"https://cdn.example/p.jpg"}}}
	]}`
	out, err := Parse([]byte(body))
	require.NoError(t, err)
	assert.NotContains(t, out, "bad")
	require.Len(t, out["ok"], 1)
}

func TestParseNullVideosFieldIsNotVideo(t *testing.T) {
	body := `{"data":[{"id":"n1","videos":null}]}`
	out, err := Parse([]byte(body))
	require.NoError(t, err)
	assert.NotContains(t, out, "n1")
}

func TestParseMixedFeed(t *testing.T) {
	body := `{"data":[
		{"id":"p1","type":"image","images":{"standard_resolution":{"url":"https://cdn.example/p1.jpg"}}},
		{"id":"v1","type":"video"},
		{"id":"c1","carousel_media":[{"images":{"standard_resolution":{"url":"https://cdn.example/c1a.jpg"}}},{"type":"video"}]}
	]}`
	out, err := Parse([]byte(body))
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Len(t, out["c1"], 2)
}
