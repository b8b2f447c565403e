// Package attachment turns a local image file into a preview for display and
// an upload for the multipart post request.
package attachment

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/disintegration/imaging"
)

// PreviewSize bounds both sides of the preview thumbnail.
const PreviewSize = 320

var (
	ErrEmpty           = errors.New("image file is empty")
	ErrTooLarge        = errors.New("image file is too large")
	ErrUnsupportedType = errors.New("unsupported image type")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Attachment is a selected image: the raw file for transmission and its
// previews for display.
type Attachment struct {
	Upload models.Upload
	// PreviewURL is the original file as a data: URL.
	PreviewURL string
	// Thumbnail is a JPEG no larger than PreviewSize on either side.
	Thumbnail     []byte
	Width, Height int
}

// Encode reads at most maxBytes of an image, checks its type from the bytes
// themselves and builds the previews.
func Encode(r io.Reader, filename string, maxBytes int64) (*Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}

	contentType := http.DetectContentType(data[:min(len(data), 512)])
	if !allowedTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	bounds := img.Bounds()

	var thumb bytes.Buffer
	fitted := imaging.Fit(img, PreviewSize, PreviewSize, imaging.Lanczos)
	if err := imaging.Encode(&thumb, fitted, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}

	return &Attachment{
		Upload: models.Upload{
			Filename:    filepath.Base(filename),
			ContentType: contentType,
			Data:        data,
		},
		PreviewURL: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Thumbnail:  thumb.Bytes(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}, nil
}

// EncodeFile is Encode over a file on disk.
func EncodeFile(path string, maxBytes int64) (*Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Encode(f, path, maxBytes)
}
