package base64_test

import (
	"testing"

	"innkeep/shared/base64"

	"github.com/stretchr/testify/assert"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid image png",
			input:    pixelPNG,
			expected: "image/png",
		},
		{
			name:     "valid text plain",
			input:    "data:text/plain;base64,SGVsbG8gV29ybGQ=",
			expected: "text/plain",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no data prefix",
			input:    "image/png;base64,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "no base64 marker",
			input:    "data:image/png,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "only data prefix with base64",
			input:    "data:;base64,",
			expected: "",
		},
		{
			name:     "complex content type",
			input:    "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=",
			expected: "image/svg+xml;charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contentType string
		wantErr     bool
	}{
		{
			name:        "png proof",
			input:       pixelPNG,
			contentType: "image/png",
		},
		{
			name:    "not a data url",
			input:   "iVBORw0KGgo=",
			wantErr: true,
		},
		{
			name:    "corrupt payload",
			input:   "data:image/png;base64,@@@",
			wantErr: true,
		},
		{
			name:    "empty payload",
			input:   "data:image/png;base64,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, data, err := base64.Decode(tt.input)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.contentType, contentType)
			assert.NotEmpty(t, data)
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", base64.Extension("image/jpeg"))
	assert.Equal(t, "png", base64.Extension("image/png"))
	assert.Equal(t, "gif", base64.Extension("image/gif"))
	assert.Equal(t, "bin", base64.Extension("garbage"))
}
