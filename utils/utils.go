package utils

import (
	"io"
	"net/http"
)

// Contains reports whether a slice holds the given value.
func Contains[T comparable](items []T, value T) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

// DetectContentType sniffs the MIME type of a content stream and rewinds
// it. Only the first 512 bytes are used to sniff the content type; it
// always returns a valid type and "application/octet-stream" if no other
// seemed to match.
func DetectContentType(r io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := r.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}
