package metadata

import (
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
)

const clrHeaderDirectory = 14

// Load opens a PE image and parses its metadata.
func Load(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	md, err := Read(f)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}

// Read parses the metadata of a PE image.
func Read(r io.ReaderAt) (*Metadata, error) {
	img, err := pe.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotManaged, err)
	}
	defer img.Close()

	dir, ok := clrDirectory(img)
	if !ok || dir.VirtualAddress == 0 {
		return nil, ErrNotManaged
	}
	header, err := readRVA(img, dir.VirtualAddress, 16)
	if err != nil {
		return nil, err
	}
	mdRVA := binary.LittleEndian.Uint32(header[8:])
	mdSize := binary.LittleEndian.Uint32(header[12:])
	if mdRVA == 0 || mdSize == 0 {
		return nil, ErrNotManaged
	}
	size, err := safecast.Conv[int](mdSize)
	if err != nil {
		return nil, malformed("metadata size overflow: %v", err)
	}
	data, err := readRVA(img, mdRVA, size)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(data)
}

func clrDirectory(img *pe.File) (pe.DataDirectory, bool) {
	switch oh := img.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if oh.NumberOfRvaAndSizes > clrHeaderDirectory {
			return oh.DataDirectory[clrHeaderDirectory], true
		}
	case *pe.OptionalHeader64:
		if oh.NumberOfRvaAndSizes > clrHeaderDirectory {
			return oh.DataDirectory[clrHeaderDirectory], true
		}
	}
	return pe.DataDirectory{}, false
}

// readRVA reads n bytes at a relative virtual address.
func readRVA(img *pe.File, rva uint32, n int) ([]byte, error) {
	for _, s := range img.Sections {
		extent := s.VirtualSize
		if s.Size > extent {
			extent = s.Size
		}
		if rva < s.VirtualAddress || rva >= s.VirtualAddress+extent {
			continue
		}
		buf := make([]byte, n)
		off := int64(rva - s.VirtualAddress)
		if _, err := s.ReadAt(buf, off); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, malformed("rva 0x%x+%d beyond section %s", rva, n, s.Name)
			}
			return nil, &IOError{Op: "read", Err: err}
		}
		return buf, nil
	}
	return nil, malformed("rva 0x%x not mapped by any section", rva)
}
