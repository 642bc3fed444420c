package dataset

import (
	"log"
	"os"
	"sync"
	"time"
)

type fileStamp struct {
	size    int64
	modTime time.Time
}

// Source lazily loads the dataset file and shares one read-only Table with
// every caller. The file is re-checked on access and reloaded when its size
// or modification time changes; a failed reload keeps the previous table and
// is not retried until the file changes again.
type Source struct {
	path string
	load func(path string) (*Table, error)

	mu    sync.RWMutex
	table *Table
	stamp fileStamp
}

// NewSource creates a source for the dataset file at path. Nothing is read until Table is called.
func NewSource(path string) *Source {
	return &Source{path: path, load: Load}
}

// NewStaticSource wraps an already loaded table; it never reloads
func NewStaticSource(t *Table) *Source {
	return &Source{table: t}
}

// Path returns the dataset file path
func (s *Source) Path() string {
	return s.path
}

// Table returns the loaded table, loading or reloading the file when needed
func (s *Source) Table() (*Table, error) {
	s.mu.RLock()
	table, stamp := s.table, s.stamp
	s.mu.RUnlock()

	if s.path == "" {
		return table, nil
	}

	info, statErr := os.Stat(s.path)
	if table != nil && (statErr != nil || stampOf(info) == stamp) {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have reloaded while we waited for the lock
	if s.table != nil && statErr == nil && stampOf(info) == s.stamp {
		return s.table, nil
	}

	loaded, err := s.load(s.path)
	if err != nil {
		if s.table != nil {
			if statErr == nil {
				s.stamp = stampOf(info)
			}
			log.Printf("Dataset reload failed, keeping previous snapshot: %v", err)
			return s.table, nil
		}
		return nil, err
	}

	s.table = loaded
	if statErr == nil {
		s.stamp = stampOf(info)
	}
	log.Printf("Dataset loaded: %s (%d records)", s.path, loaded.Len())
	return loaded, nil
}

func stampOf(info os.FileInfo) fileStamp {
	return fileStamp{size: info.Size(), modTime: info.ModTime()}
}
