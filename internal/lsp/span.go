package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// offsetForPosition converts an LSP position (UTF-16 code units) into a
// byte offset. Positions past the end of a line clamp to the line end.
func offsetForPosition(file *source.File, pos protocol.Position) int {
	if file == nil || len(file.Content) == 0 {
		return 0
	}
	content := file.Content
	line := int(pos.Line)
	if line > len(file.LineIdx) {
		return len(content)
	}
	lineStart := 0
	if line > 0 {
		lineStart = int(file.LineIdx[line-1]) + 1
	}
	lineEnd := len(content)
	if line < len(file.LineIdx) {
		lineEnd = int(file.LineIdx[line])
	}
	units := uint32(0)
	off := lineStart
	for off < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		need := uint32(1)
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += size
	}
	return off
}

// positionForOffset converts a byte offset into an LSP position.
func positionForOffset(file *source.File, offset int) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	offset = min(max(offset, 0), len(file.Content))
	off := safeUint32(offset)
	lineIdx := file.LineIdx
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	lineStart := 0
	if idx > 0 {
		lineStart = int(lineIdx[idx-1]) + 1
	}
	units := 0
	for i := lineStart; i < offset; {
		r, size := utf8.DecodeRune(file.Content[i:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return protocol.Position{Line: safeUint32(idx), Character: safeUint32(units)}
}

func rangeFor(file *source.File, offset, length int) protocol.Range {
	return protocol.Range{
		Start: positionForOffset(file, offset),
		End:   positionForOffset(file, offset+max(length, 0)),
	}
}
