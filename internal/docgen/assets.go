package docgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// Well-known renderer asset names inside the asset directory.
const (
	TemplateAsset = "template.pdf"
	FontAsset     = "NotoSansDevanagari-Regular.ttf"
)

// AssetStore abstracts the renderer asset directory (blank template, fonts).
type AssetStore interface {
	Exists(name string) bool
	ReadBytes(name string) ([]byte, error)

	// Path returns the on-disk location of the asset, used when an email
	// attachment references a file instead of carrying bytes.
	Path(name string) string

	// Stat reports the asset size for diagnostics, ok is false when absent.
	Stat(name string) (size int64, ok bool)
}

// FSStore reads assets from a flat directory on the local filesystem.
type FSStore struct {
	Dir string
}

var _ AssetStore = (*FSStore)(nil)

func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("asset directory is required")
	}

	return &FSStore{Dir: dir}, nil
}

func (s *FSStore) Exists(name string) bool {
	_, ok := s.Stat(name)
	return ok
}

func (s *FSStore) ReadBytes(name string) ([]byte, error) {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}

	return b, nil
}

func (s *FSStore) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *FSStore) Stat(name string) (size int64, ok bool) {
	info, err := os.Stat(s.Path(name))
	if err != nil || info.IsDir() {
		return 0, false
	}

	return info.Size(), true
}
