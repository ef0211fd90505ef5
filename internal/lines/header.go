// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lines

import (
	"fmt"
	"io"
	"regexp"

	"github.com/pdiddy/rmlines/pkg/types"
)

const (
	// signatureLen is the fixed width of the ASCII signature, including
	// its space padding. The little-endian uint32 layer count follows
	// immediately, so a valid file is at least signatureLen+4 bytes.
	signatureLen = 45

	// maxDeclaredLayers bounds the layer count a header may declare.
	// Native pages hold a handful of layers; anything past this is
	// assumed corrupted and clamped rather than rejected.
	maxDeclaredLayers = 100

	// clampedLayers is the layer count used when the declared count
	// fails the sanity bound.
	clampedLayers = 10
)

// signaturePattern is the canonical signature. signatureFallback is the
// looser match applied second, tolerating extra text around the version
// tag in files written by modified firmware.
var (
	signaturePattern  = regexp.MustCompile(`^reMarkable \.lines file, version=(\d+) *$`)
	signatureFallback = regexp.MustCompile(`reMarkable .*version=(\d+)`)
)

// header is the validated fixed-size file prelude.
type header struct {
	version    types.FormatVersion
	layerCount int
}

// parseHeader validates the signature and layer count at the start of the
// cursor. Recovery decisions (version fallback, layer-count clamping) are
// reported on diag; only a malformed signature or a zero layer count is
// fatal.
func parseHeader(c *cursor, diag io.Writer) (header, error) {
	sig, err := c.bytes(signatureLen)
	if err != nil {
		return header{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidFormat, len(c.buf), signatureLen+4)
	}

	m := signaturePattern.FindSubmatch(sig)
	if m == nil {
		m = signatureFallback.FindSubmatch(sig)
	}
	if m == nil {
		return header{}, fmt.Errorf("%w: signature mismatch", ErrInvalidFormat)
	}

	version := types.FormatVersion(m[1])
	switch version {
	case types.V3, types.V4, types.V5, types.V6:
	default:
		fmt.Fprintf(diag, "unsupported version %q, decoding with the v5 stroke layout\n", m[1])
		version = types.V5
	}

	count, err := c.uint32()
	if err != nil {
		return header{}, fmt.Errorf("%w: missing layer count", ErrInvalidFormat)
	}
	if count == 0 {
		return header{}, fmt.Errorf("%w: zero layers", ErrInvalidFormat)
	}
	layerCount := int(count)
	if layerCount > maxDeclaredLayers {
		fmt.Fprintf(diag, "layer count %d exceeds %d, clamping to %d (header assumed corrupted)\n",
			layerCount, maxDeclaredLayers, clampedLayers)
		layerCount = clampedLayers
	}

	return header{version: version, layerCount: layerCount}, nil
}
