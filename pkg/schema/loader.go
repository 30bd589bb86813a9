package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

var (
	// ErrSource reports a source that cannot be read.
	ErrSource = errors.New("schema: source")
	// ErrHTTPDisabled is returned for URL sources when the loader has no client.
	ErrHTTPDisabled = errors.New("schema: http support disabled")
)

// MaxDocumentSize caps how much the loader reads from any source.
const MaxDocumentSize = 16 << 20

// DefaultRequestTimeout bounds URL fetches when no client timeout is set.
const DefaultRequestTimeout = 30 * time.Second

// LoaderOptions configure NewLoader.
type LoaderOptions struct {
	// FileSystem backs fs sources that carry no filesystem of their own.
	FileSystem fs.FS
	// HTTPClient is cloned; its Timeout is filled from RequestTimeout when zero.
	HTTPClient *http.Client
	// AllowHTTP enables URL sources with a default client.
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader reads raw import documents from a Source.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

// NewLoader constructs a Loader from options.
func NewLoader(options LoaderOptions) *Loader {
	timeout := options.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: timeout}
	}
	return &Loader{fs: options.FileSystem, http: client}
}

// Load returns the bytes behind src. Nothing is validated here.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source is nil", ErrSource)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = l.loadFile(src.Location())
	case SourceKindFS:
		data, err = l.loadFS(src)
	case SourceKindURL:
		if l.http == nil {
			return nil, ErrHTTPDisabled
		}
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("%w: unsupported kind %q", ErrSource, src.Kind())
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer f.Close()
	return readLimited(f)
}

func (l *Loader) loadFS(src Source) ([]byte, error) {
	filesystem := l.fs
	if s, ok := src.(fsSource); ok && s.fsys != nil {
		filesystem = s.fsys
	}
	if filesystem == nil {
		return nil, fmt.Errorf("%w: filesystem is not configured", ErrSource)
	}
	if src.Location() == "" {
		return nil, fmt.Errorf("%w: fs path is required", ErrSource)
	}
	f, err := filesystem.Open(src.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer f.Close()
	return readLimited(f)
}

func (l *Loader) loadHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrSource, rawURL, resp.Status)
	}
	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrSource, MaxDocumentSize)
	}
	return data, nil
}
