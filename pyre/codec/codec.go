// Package codec serializes assembled documents into the transport encoding
// the client accepts: canonical JSON, gzip-compressed, wrapped in standard
// base64. Decode inverts the pipeline for inspection and testing.
package codec

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/pyre"
)

// Artifact is the encoded template paired with its derived display name.
type Artifact struct {
	Name string
	Code string
}

// Encode serializes doc to its transport string. The transform is
// deterministic and side-effect free apart from a success notice on the
// context logger.
func Encode(ctx context.Context, doc *pyre.Document) (Artifact, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return Artifact{}, fmt.Errorf("serializing template %q: %w", doc.Name, err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return Artifact{}, fmt.Errorf("compressing template %q: %w", doc.Name, err)
	}
	if err := zw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("compressing template %q: %w", doc.Name, err)
	}

	code := base64.StdEncoding.EncodeToString(buf.Bytes())
	ctxlog.FromContext(ctx).Info("template built",
		"name", doc.Name, "blocks", len(doc.Blocks), "encodedLength", len(code))
	return Artifact{Name: doc.Name, Code: code}, nil
}

// Decode parses a transport string back into a Document. The derived name
// is not part of the encoding and is left empty.
func Decode(code string) (*pyre.Document, error) {
	compressed, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("opening compressed template: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing template: %w", err)
	}
	var doc pyre.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("parsing template JSON: %w", err)
	}
	return &doc, nil
}
