package tcos

import (
	"bytes"
	"compress/gzip"
)

// encodeBody prepares a file's raw bytes for transmission. With compression
// off the bytes pass through untouched. Encoding happens once per file,
// before the first upload attempt, never per retry.
func encodeBody(name string, raw []byte, compress bool) ([]byte, error) {
	if !compress {
		return raw, nil
	}

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(raw); err != nil {
		writer.Close()
		return nil, &EncodingError{Name: name, Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &EncodingError{Name: name, Err: err}
	}

	return buf.Bytes(), nil
}
