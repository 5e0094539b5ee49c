package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURLMarker = ";base64,"

var ErrInvalidDataURL = errors.New("invalid base64 data url")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, dataURLMarker)

	if end == -1 || end < start || !strings.HasPrefix(file, "data:") {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URL into its content type and raw bytes.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURL
	}

	payload := file[strings.Index(file, dataURLMarker)+len(dataURLMarker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data url: %w", err)
	}

	if len(data) == 0 {
		return "", nil, ErrInvalidDataURL
	}

	return contentType, data, nil
}

// Extension maps an image content type to a file extension.
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		_, sub, found := strings.Cut(contentType, "/")
		if !found {
			return "bin"
		}

		return sub
	}
}
