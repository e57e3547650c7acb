// Package asset owns the optional image attached to a recipe draft and the
// preview handle derived from it.
//
// A preview handle exists if and only if the draft has an asset. Replacing or
// clearing the asset releases the previous handle exactly once.
package asset

import (
	"fmt"
	"log/slog"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// DraftStore is the part of the draft store the manager writes to
type DraftStore interface {
	SetAsset(a *models.Asset)
}

// Option configures a Manager
type Option func(*Manager)

// WithInputReset registers a hook run on Clear so the input control forgets
// its last selection and picking the same file again counts as new.
func WithInputReset(fn func()) Option {
	return func(m *Manager) { m.resetInput = fn }
}

// Manager keeps the draft asset and its preview handle in lockstep
type Manager struct {
	store      DraftStore
	previews   PreviewProvider
	log        *slog.Logger
	resetInput func()

	asset  *models.Asset
	handle Handle
}

// NewManager creates a manager writing assets into store
func NewManager(store DraftStore, previews PreviewProvider, log *slog.Logger, opts ...Option) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		store:    store,
		previews: previews,
		log:      log,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Set attaches a newly selected asset. The new preview is acquired first; if
// that fails nothing changes. The previous handle is then released.
func (m *Manager) Set(a *models.Asset) error {
	if a == nil {
		m.Clear()
		return nil
	}

	h, err := m.previews.Acquire(a)
	if err != nil {
		return fmt.Errorf("failed to preview %s: %w", a.Name, err)
	}

	m.release()
	m.asset = a
	m.handle = h
	m.store.SetAsset(a)

	m.log.Debug("asset attached", "name", a.Name, "bytes", a.Size(), "preview", h.Path)
	return nil
}

// Clear detaches the asset, releases its preview and resets the input control
func (m *Manager) Clear() {
	m.release()
	m.asset = nil
	m.store.SetAsset(nil)
	if m.resetInput != nil {
		m.resetInput()
	}
}

// Close releases any live preview without touching the draft
func (m *Manager) Close() {
	m.release()
	m.asset = nil
}

// Asset returns the attached asset, or nil
func (m *Manager) Asset() *models.Asset {
	return m.asset
}

// Preview returns the live preview handle and whether one exists
func (m *Manager) Preview() (Handle, bool) {
	return m.handle, !m.handle.IsZero()
}

func (m *Manager) release() {
	if m.handle.IsZero() {
		return
	}
	h := m.handle
	m.handle = Handle{}
	if err := m.previews.Release(h); err != nil {
		m.log.Warn("failed to release preview", "handle", h.ID, "err", err)
		return
	}
	m.log.Debug("preview released", "handle", h.ID)
}
