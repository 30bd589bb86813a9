// Package media validates and inlines profile pictures.
//
// Accepting an image is two steps: Validate checks the declared metadata
// synchronously, then Read loads the bytes on its own goroutine and yields a
// data URI ready to store on the document.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-cvgen/pkg/i18n"
)

// MaxImageSize is the largest accepted picture, in bytes.
const MaxImageSize = 2 << 20

// Accepted content types.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
)

var (
	// ErrImageTooLarge rejects pictures over MaxImageSize.
	ErrImageTooLarge = errors.New("media: image exceeds 2 MB")
	// ErrUnsupportedImage rejects anything but PNG and JPEG.
	ErrUnsupportedImage = errors.New("media: only PNG or JPEG images are supported")
	// ErrEmptyImage rejects zero-byte input.
	ErrEmptyImage = errors.New("media: image is empty")
)

// Validate checks a picture before its bytes are read. contentType may be
// empty, in which case the file extension decides.
func Validate(name string, size int64, contentType string) error {
	if size > MaxImageSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, filepath.Base(name), size)
	}
	if size == 0 {
		return ErrEmptyImage
	}
	if _, err := declaredType(name, contentType); err != nil {
		return err
	}
	return nil
}

// Result is the outcome of Read.
type Result struct {
	DataURI     string
	ContentType string
	Size        int
	Err         error
}

// Read loads r in the background. The channel yields exactly one Result.
// The sniffed content must be PNG or JPEG and, when contentType is given,
// agree with it.
func Read(ctx context.Context, r io.Reader, contentType string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- read(ctx, r, contentType)
	}()
	return out
}

// ReadFile validates path and reads it in the background.
func ReadFile(ctx context.Context, path string) <-chan Result {
	info, err := os.Stat(path)
	if err != nil {
		return failed(fmt.Errorf("media: %w", err))
	}
	declared := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if err := Validate(path, info.Size(), declared); err != nil {
		return failed(err)
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		f, err := os.Open(path)
		if err != nil {
			out <- Result{Err: fmt.Errorf("media: %w", err)}
			return
		}
		defer f.Close()
		out <- read(ctx, f, declared)
	}()
	return out
}

func read(ctx context.Context, r io.Reader, contentType string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return Result{Err: fmt.Errorf("media: read image: %w", err)}
	}
	if len(data) > MaxImageSize {
		return Result{Err: ErrImageTooLarge}
	}
	if len(data) == 0 {
		return Result{Err: ErrEmptyImage}
	}

	sniffed := http.DetectContentType(data)
	if sniffed != PNG && sniffed != JPEG {
		return Result{Err: fmt.Errorf("%w: detected %s", ErrUnsupportedImage, sniffed)}
	}
	if declared := normalizeType(contentType); declared != "" && declared != sniffed {
		return Result{Err: fmt.Errorf("%w: declared %s but detected %s", ErrUnsupportedImage, declared, sniffed)}
	}
	return Result{
		DataURI:     DataURI(sniffed, data),
		ContentType: sniffed,
		Size:        len(data),
	}
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	var b bytes.Buffer
	b.Grow(len(contentType) + 13 + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Warning maps a media error onto the translated message shown to users.
// Unknown errors return their own text.
func Warning(err error, t i18n.Translator, locale string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrImageTooLarge):
		return i18n.Text(t, locale, "imageSizeWarning", func(string, string, []any, error) string {
			return ErrImageTooLarge.Error()
		}, map[string]any{"size": MaxImageSize >> 20})
	case errors.Is(err, ErrUnsupportedImage), errors.Is(err, ErrEmptyImage):
		return i18n.Text(t, locale, "imageTypeWarning", func(string, string, []any, error) string {
			return ErrUnsupportedImage.Error()
		})
	default:
		return err.Error()
	}
}

func declaredType(name, contentType string) (string, error) {
	declared := normalizeType(contentType)
	if declared == "" {
		declared = normalizeType(mime.TypeByExtension(strings.ToLower(filepath.Ext(name))))
	}
	if declared != PNG && declared != JPEG {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, filepath.Base(name))
	}
	return declared, nil
}

func normalizeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	if mediaType == "image/jpg" || mediaType == "image/pjpeg" {
		return JPEG
	}
	return mediaType
}

func failed(err error) <-chan Result {
	out := make(chan Result, 1)
	out <- Result{Err: err}
	close(out)
	return out
}
