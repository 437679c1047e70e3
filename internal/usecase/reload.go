package usecase

import (
	"context"
	"fmt"
	"path/filepath"
)

// ReloadService rebuilds Artifacts after the bundler rewrites them in dev
// mode. A broken rebuild leaves the previous Artifacts in place.
type ReloadService struct {
	fs       FileSystem
	store    *ArtifactStore
	renderer Renderer
}

func NewReloadService(fsys FileSystem, store *ArtifactStore, renderer Renderer) *ReloadService {
	return &ReloadService{
		fs:       fsys,
		store:    store,
		renderer: renderer,
	}
}

func (s *ReloadService) Reload(ctx context.Context, changed string) error {
	current := s.store.Load()

	next, err := LoadArtifacts(s.fs, current.BundlePath, current.TemplatePath)
	if err != nil {
		return fmt.Errorf("reload skipped: %w", err)
	}

	if samePath(changed, current.BundlePath) {
		if reloader, ok := s.renderer.(Reloader); ok {
			if err := reloader.Reload(ctx); err != nil {
				return err
			}
		}
	}

	s.store.Swap(next)
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
