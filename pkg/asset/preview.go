package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// ErrHandleReleased is returned when a handle is released twice or was never acquired
var ErrHandleReleased = errors.New("preview handle already released")

// Handle references a locally viewable copy of an asset
type Handle struct {
	ID   string
	Path string
}

// IsZero reports whether h is the empty handle
func (h Handle) IsZero() bool {
	return h.ID == ""
}

// PreviewProvider creates and releases preview handles. The manager depends
// only on this interface so tests can record acquire and release calls.
type PreviewProvider interface {
	Acquire(a *models.Asset) (Handle, error)
	Release(h Handle) error
}

// TempFileProvider writes each previewed asset to its own file under Dir.
// Releasing a handle removes the file.
type TempFileProvider struct {
	Dir string

	mu   sync.Mutex
	live map[string]string
}

// NewTempFileProvider creates a provider writing under dir ("" means os.TempDir)
func NewTempFileProvider(dir string) *TempFileProvider {
	return &TempFileProvider{
		Dir:  dir,
		live: make(map[string]string),
	}
}

// Acquire writes the asset bytes to a new file and returns its handle
func (p *TempFileProvider) Acquire(a *models.Asset) (Handle, error) {
	if a == nil {
		return Handle{}, fmt.Errorf("acquire preview: nil asset")
	}

	f, err := os.CreateTemp(p.Dir, "recipe-preview-*"+filepath.Ext(a.Name))
	if err != nil {
		return Handle{}, fmt.Errorf("failed to create preview file: %w", err)
	}
	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Handle{}, fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Handle{}, fmt.Errorf("failed to close preview file: %w", err)
	}

	h := Handle{ID: uuid.NewString(), Path: f.Name()}

	p.mu.Lock()
	p.live[h.ID] = h.Path
	p.mu.Unlock()

	return h, nil
}

// Release removes the preview file behind h
func (p *TempFileProvider) Release(h Handle) error {
	p.mu.Lock()
	path, ok := p.live[h.ID]
	delete(p.live, h.ID)
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrHandleReleased, h.ID)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove preview file: %w", err)
	}
	return nil
}

// Live returns the number of handles not yet released
func (p *TempFileProvider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
