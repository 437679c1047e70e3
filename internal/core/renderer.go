package core

import "context"

// RenderContext is the per-request input handed to the bundle renderer.
// The client router matches URL against its route table.
type RenderContext struct {
	URL string `json:"url"`
}

// RenderedApp is what one render produced. Head holds the markup collected
// for <head> (meta, resource hints, component styles). State is the inline
// script carrying the serialized store, placed right after the app markup.
// Context holds the scalar values the render left on its context, used for
// template placeholders.
type RenderedApp struct {
	HTML    string
	Head    string
	State   string
	Context map[string]string
}

type Renderer interface {
	Render(ctx context.Context, rc RenderContext) (RenderedApp, error)
}
