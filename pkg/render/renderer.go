package render

import "context"

// Renderer converts a Form into a byte representation (HTML, JSON, terminal
// prompts).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
