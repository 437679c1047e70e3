package usecase

import (
	"context"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/core"
)

type Renderer = core.Renderer

// Reloader is implemented by renderers that can re-read the server bundle
// without restarting.
type Reloader interface {
	Reload(ctx context.Context) error
}

type RenderObserver interface {
	ObserveRender(result string, d time.Duration)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem
