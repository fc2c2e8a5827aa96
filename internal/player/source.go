package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// ResourceScheme prefixes locators of tracks bundled into the binary.
	ResourceScheme = "res://"
	fileScheme     = "file://"
)

// ErrUnreadable is returned when a locator cannot be turned into a stream.
var ErrUnreadable = errors.New("source unreadable")

// Source is a resolved locator, ready to be opened by a decoder.
type Source struct {
	Locator string
	// Format is the lower-case file extension that selects the decoder.
	Format string
	open   func() (io.ReadCloser, error)
}

// Open returns a fresh stream over the source. The stream implements
// io.Seeker whenever the underlying storage allows it.
func (s Source) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, s.Locator)
	}
	return s.open()
}

// NewSource builds a source over an in-memory buffer.
func NewSource(locator, format string, data []byte) Source {
	return Source{
		Locator: locator,
		Format:  format,
		open: func() (io.ReadCloser, error) {
			return nopSeekCloser{bytes.NewReader(data)}, nil
		},
	}
}

// Resolver turns locators into sources.
//
// Supported forms:
//
//	res://raw/sample_song   entry of Resources, extension looked up
//	file:///music/a.mp3     filesystem path
//	/music/a.mp3            filesystem path
//
// Filesystem paths must name an existing regular file that can be opened for
// reading. Any other scheme is rejected.
type Resolver struct {
	Resources fs.FS
}

// Resolve checks that the locator can be read and returns its source.
// Failures wrap ErrUnreadable.
func (r Resolver) Resolve(locator string) (Source, error) {
	switch {
	case locator == "":
		return Source{}, fmt.Errorf("%w: empty locator", ErrUnreadable)
	case strings.HasPrefix(locator, ResourceScheme):
		return r.resolveResource(locator)
	case strings.HasPrefix(locator, fileScheme):
		u, err := url.Parse(locator)
		if err != nil || u.Path == "" {
			return Source{}, fmt.Errorf("%w: malformed locator %q", ErrUnreadable, locator)
		}
		return resolvePath(locator, u.Path)
	case strings.Contains(locator, "://"):
		return Source{}, fmt.Errorf("%w: unsupported scheme in %q", ErrUnreadable, locator)
	default:
		return resolvePath(locator, locator)
	}
}

func (r Resolver) resolveResource(locator string) (Source, error) {
	if r.Resources == nil {
		return Source{}, fmt.Errorf("%w: no resource bundle for %s", ErrUnreadable, locator)
	}
	name := strings.TrimPrefix(locator, ResourceScheme)
	if !fs.ValidPath(name) {
		return Source{}, fmt.Errorf("%w: malformed locator %q", ErrUnreadable, locator)
	}

	entry := name
	if path.Ext(name) == "" || !IsMusicFile(name) {
		matches, err := fs.Glob(r.Resources, name+".*")
		if err != nil {
			return Source{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, locator, err)
		}
		entry = ""
		for _, m := range matches {
			if IsMusicFile(m) {
				entry = m
				break
			}
		}
		if entry == "" {
			return Source{}, fmt.Errorf("%w: resource not found: %s", ErrUnreadable, locator)
		}
	}

	info, err := fs.Stat(r.Resources, entry)
	if err != nil || info.IsDir() {
		return Source{}, fmt.Errorf("%w: resource not found: %s", ErrUnreadable, locator)
	}

	resources := r.Resources
	return Source{
		Locator: locator,
		Format:  strings.ToLower(path.Ext(entry)),
		open: func() (io.ReadCloser, error) {
			return openResource(resources, entry)
		},
	}, nil
}

func resolvePath(locator, p string) (Source, error) {
	info, err := os.Stat(p)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s is a directory", ErrUnreadable, p)
	}
	f, err := os.Open(p)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	_ = f.Close()

	return Source{
		Locator: locator,
		Format:  strings.ToLower(filepath.Ext(p)),
		open: func() (io.ReadCloser, error) {
			return os.Open(p)
		},
	}, nil
}

func openResource(fsys fs.FS, name string) (io.ReadCloser, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	if _, ok := f.(io.Seeker); ok {
		return f, nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return nopSeekCloser{bytes.NewReader(data)}, nil
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }
