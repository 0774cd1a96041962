// Package utils provides helpers for loading program images from disk.
package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// LoadFile loads the given file and performs decompression if necessary.
// The compression is asserted from the file extension; files with an
// unknown (or no) extension are returned as is.
func LoadFile(filename string) ([]byte, error) {
	// read the file into a byte slice
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filename, data)
}

// Decompress decodes data according to the extension of name. Archives
// (.zip, .7z) yield their first regular file.
func Decompress(name string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zst":
		var d *zstd.Decoder
		if d, err = zstd.NewReader(bytes.NewReader(data)); err == nil {
			defer d.Close()
			decoder = d
		}
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".lz4":
		decoder = lz4.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			// open the first file in the archive
			decoder, err = f.Open()
			break
		}
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			decoder, err = f.Open()
			break
		}
	default:
		// return the data as is
		return data, nil
	}

	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", name, err)
	}
	if decoder == nil {
		return nil, fmt.Errorf("utils: %s: archive is empty", name)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", name, err)
	}
	return out, nil
}
