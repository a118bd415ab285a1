package storage

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"foodgram-backend/domain"
)

const MaxImageSize = 10 << 20

var AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DecodeDataURI parses "data:image/<ext>;base64,<payload>". The content type
// is sniffed from the decoded bytes, the declared one is not trusted.
func DecodeDataURI(value string) (domain.ImageUpload, error) {
	header, payload, ok := strings.Cut(value, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return domain.ImageUpload{}, domain.ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return domain.ImageUpload{}, domain.ErrInvalidImage
	}
	return newImage(data)
}

func FromFileHeader(fh *multipart.FileHeader) (domain.ImageUpload, error) {
	if fh.Size > MaxImageSize {
		return domain.ImageUpload{}, domain.ErrInvalidImage
	}

	file, err := fh.Open()
	if err != nil {
		return domain.ImageUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return domain.ImageUpload{}, err
	}
	return newImage(data)
}

func newImage(data []byte) (domain.ImageUpload, error) {
	if len(data) == 0 || len(data) > MaxImageSize {
		return domain.ImageUpload{}, domain.ErrInvalidImage
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return domain.ImageUpload{}, domain.ErrInvalidImage
	}
	return domain.ImageUpload{Data: data, ContentType: contentType, Extension: ext}, nil
}
