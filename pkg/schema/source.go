package schema

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where an import document comes from so the loader can
// read files, fs.FS entries, or URLs the same way.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source reading name from fsys. A nil fsys defers to
// the filesystem configured on the Loader.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	src, err := urlFrom(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseSource picks the source kind for a user supplied location: http and
// https URLs are fetched, anything else is a file path.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty source", ErrSource)
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return urlFrom(location)
	}
	return SourceFromFile(location), nil
}

func urlFrom(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrSource)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %v", ErrSource, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrSource, u.Scheme)
	}
	return urlSource{raw: raw}, nil
}
