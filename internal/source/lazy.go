package source

import (
	"os"
	"sync"
)

// Lazy is a compute-once content cell for a file that may never be read.
// The first Content call performs the read; every later call returns the
// memoized result, including a memoized error. Safe for concurrent use.
type Lazy struct {
	once    sync.Once
	load    func() ([]byte, error)
	content []byte
	err     error
}

// LazyFile defers reading path until the content is first requested.
func LazyFile(path string) *Lazy {
	return &Lazy{load: func() ([]byte, error) {
		// #nosec G304 -- path is provided by the caller
		return os.ReadFile(path)
	}}
}

// LazyBytes wraps already-available content in a Lazy cell.
func LazyBytes(content []byte) *Lazy {
	return &Lazy{load: func() ([]byte, error) {
		return content, nil
	}}
}

// LazyFunc defers to an arbitrary loader. The loader runs at most once.
func LazyFunc(load func() ([]byte, error)) *Lazy {
	return &Lazy{load: load}
}

// Content returns the file content, loading it on first use.
func (l *Lazy) Content() ([]byte, error) {
	l.once.Do(func() {
		l.content, l.err = l.load()
	})
	return l.content, l.err
}
