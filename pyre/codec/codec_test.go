package codec

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ampersand-S/dfpy/pyre"
)

func buildDocument(t *testing.T) *pyre.Document {
	t.Helper()
	tmpl := pyre.New()
	tmpl.PlayerEvent("Join")
	require.NoError(t, tmpl.PlayerAction("SendMessage", "hello", 5))
	require.NoError(t, tmpl.IfPlayer("IsSneaking"))
	require.NoError(t, tmpl.PlayerActionFor("Selection", "SendMessage", "caught"))
	tmpl.CloseBracket()
	return tmpl.Assemble(context.Background(), nil)
}

func TestEncode(t *testing.T) {
	doc := buildDocument(t)
	art, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "event_Join", art.Name)
	assert.NotEmpty(t, art.Code)
}

func TestEncodeDeterministic(t *testing.T) {
	doc := buildDocument(t)
	first, err := Encode(context.Background(), doc)
	require.NoError(t, err)
	second, err := Encode(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRoundTrip(t *testing.T) {
	doc := buildDocument(t)
	art, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	decoded, err := Decode(art.Code)
	require.NoError(t, err)

	if diff := cmp.Diff(doc.Blocks, decoded.Blocks); diff != "" {
		t.Errorf("decoded document differs (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not base64!!!")
	assert.Error(t, err)

	// Valid base64, but not gzip.
	_, err = Decode("aGVsbG8gd29ybGQ=")
	assert.Error(t, err)
}
