package usecase

import (
	"fmt"
	"sync/atomic"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

// Artifacts are the build outputs the render pipeline reads: the server
// bundle and the parsed HTML template. A value is never mutated once built.
type Artifacts struct {
	Bundle       *core.ServerBundle
	Template     *core.Template
	BundlePath   string
	TemplatePath string
}

func LoadArtifacts(fsys FileSystem, bundlePath, templatePath string) (*Artifacts, error) {
	bundle, err := LoadBundle(fsys, bundlePath)
	if err != nil {
		return nil, err
	}

	tpl, err := LoadTemplate(fsys, templatePath)
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		Bundle:       bundle,
		Template:     tpl,
		BundlePath:   bundlePath,
		TemplatePath: templatePath,
	}, nil
}

func LoadBundle(fsys FileSystem, path string) (*core.ServerBundle, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server bundle not found at %s: %w", path, err)
	}
	bundle, err := core.ParseServerBundle(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bundle, nil
}

func LoadTemplate(fsys FileSystem, path string) (*core.Template, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template not found at %s: %w", path, err)
	}
	tpl, err := core.ParseTemplate(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tpl, nil
}

// ArtifactStore hands out the current Artifacts. Outside dev mode it is
// written once at startup.
type ArtifactStore struct {
	current atomic.Pointer[Artifacts]
}

func NewArtifactStore(a *Artifacts) *ArtifactStore {
	s := &ArtifactStore{}
	s.current.Store(a)
	return s
}

func (s *ArtifactStore) Load() *Artifacts {
	return s.current.Load()
}

func (s *ArtifactStore) Swap(a *Artifacts) *Artifacts {
	return s.current.Swap(a)
}
