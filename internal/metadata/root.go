package metadata

import (
	"bytes"
	"encoding/binary"
)

const metadataSignature = 0x424A5342 // "BSJB"

// Metadata is a parsed metadata root with the heaps and tables needed for
// reference resolution.
type Metadata struct {
	RuntimeVersion string
	strings        stringHeap
	blobs          blobHeap
	tables         *tablesStream
}

// ParseMetadata parses a metadata root (the bytes the CLI header points at).
func ParseMetadata(data []byte) (*Metadata, error) {
	if len(data) < 20 || binary.LittleEndian.Uint32(data) != metadataSignature {
		return nil, malformed("bad metadata signature")
	}
	verLen := int(binary.LittleEndian.Uint32(data[12:]))
	pos := 16 + verLen
	if verLen < 0 || pos+4 > len(data) {
		return nil, malformed("bad metadata version length %d", verLen)
	}
	md := &Metadata{RuntimeVersion: string(bytes.TrimRight(data[16:pos], "\x00"))}
	streams := int(binary.LittleEndian.Uint16(data[pos+2:]))
	pos += 4

	var tablesData []byte
	for i := 0; i < streams; i++ {
		if pos+8 > len(data) {
			return nil, malformed("truncated stream header")
		}
		off := int64(binary.LittleEndian.Uint32(data[pos:]))
		size := int64(binary.LittleEndian.Uint32(data[pos+4:]))
		pos += 8
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return nil, malformed("unterminated stream name")
		}
		name := string(data[pos : pos+end])
		pos += (end + 4) &^ 3
		if off+size > int64(len(data)) {
			return nil, malformed("stream %s overruns metadata", name)
		}
		body := data[off : off+size]
		switch name {
		case "#~", "#-":
			tablesData = body
		case "#Strings":
			md.strings = stringHeap(body)
		case "#Blob":
			md.blobs = blobHeap(body)
		}
	}
	if tablesData == nil {
		return nil, malformed("metadata has no tables stream")
	}
	ts, err := parseTables(tablesData)
	if err != nil {
		return nil, err
	}
	md.tables = ts
	return md, nil
}
