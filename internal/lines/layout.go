// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lines

import "github.com/pdiddy/rmlines/pkg/types"

// strokeLayout describes the binary shape of one stroke record. Later
// firmware appended a trailing uint32 per stroke; reading the wrong
// record width desynchronises every subsequent read, so the layout is
// selected exactly once per document from the validated version.
type strokeLayout struct {
	// hasExtra is set for the 24-byte record with the trailing uint32.
	hasExtra bool
}

// recordSize returns the stroke record width in bytes.
func (l strokeLayout) recordSize() int {
	if l.hasExtra {
		return 24
	}
	return 20
}

// layoutFor maps a format version to its stroke record layout. Versions
// past V6 are unknown; the header parser has already normalised them to
// V5, which shares the 24-byte layout.
func layoutFor(v types.FormatVersion) strokeLayout {
	switch v {
	case types.V3, types.V4:
		return strokeLayout{hasExtra: false}
	default:
		return strokeLayout{hasExtra: true}
	}
}
