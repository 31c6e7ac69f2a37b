package metadata

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

type stringHeap []byte

func (h stringHeap) at(off uint32) (string, error) {
	if off == 0 {
		return "", nil
	}
	if int64(off) >= int64(len(h)) {
		return "", malformed("string offset %d out of range", off)
	}
	rest := h[off:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", malformed("unterminated string at %d", off)
	}
	return string(rest[:end]), nil
}

type blobHeap []byte

func (h blobHeap) at(off uint32) ([]byte, error) {
	if int64(off) >= int64(len(h)) {
		if off == 0 {
			return nil, nil
		}
		return nil, malformed("blob offset %d out of range", off)
	}
	n, size, err := compressedUint(h[off:])
	if err != nil {
		return nil, err
	}
	start := int64(off) + int64(size)
	end := start + int64(n)
	if end > int64(len(h)) {
		return nil, malformed("blob at %d overruns heap", off)
	}
	return h[start:end], nil
}

// compressedUint decodes an ECMA-335 II.23.2 compressed unsigned integer
// and returns the value and the number of bytes consumed.
func compressedUint(b []byte) (uint32, int, error) {
	if len(b) == 0 {
		return 0, 0, malformed("empty compressed integer")
	}
	switch {
	case b[0]&0x80 == 0:
		return uint32(b[0]), 1, nil
	case b[0]&0xC0 == 0x80:
		if len(b) < 2 {
			return 0, 0, malformed("truncated compressed integer")
		}
		return uint32(b[0]&0x3F)<<8 | uint32(b[1]), 2, nil
	case b[0]&0xE0 == 0xC0:
		if len(b) < 4 {
			return 0, 0, malformed("truncated compressed integer")
		}
		return uint32(b[0]&0x1F)<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), 4, nil
	}
	return 0, 0, malformed("invalid compressed integer prefix 0x%02x", b[0])
}

// attributeString extracts the first fixed string argument of a custom
// attribute value blob (prolog 0x0001 followed by a SerString).
func attributeString(blob []byte) (string, bool, error) {
	if len(blob) < 2 || binary.LittleEndian.Uint16(blob) != 0x0001 {
		return "", false, malformed("custom attribute blob has no prolog")
	}
	rest := blob[2:]
	if len(rest) == 0 {
		return "", false, malformed("custom attribute blob has no arguments")
	}
	if rest[0] == 0xFF {
		return "", false, nil
	}
	n, size, err := compressedUint(rest)
	if err != nil {
		return "", false, err
	}
	if int64(size)+int64(n) > int64(len(rest)) {
		return "", false, malformed("custom attribute string overruns blob")
	}
	s := rest[size : size+int(n)]
	if !utf8.Valid(s) {
		return "", false, malformed("custom attribute string is not UTF-8")
	}
	return string(s), true, nil
}
