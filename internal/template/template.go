// Package template is the rendering collaborator: it substitutes named
// placeholders in template files with pre-rendered HTML fragment strings.
//
// Substitution is literal. Nothing is escaped here; callers own the
// fragments they pass in, and the XSS exposure of unescaped user text is a
// documented property of this contract, not something this layer corrects.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Renderer struct {
	dir string
}

func New(dir string) *Renderer {
	return &Renderer{dir: filepath.Clean(dir)}
}

// Render loads the named template file and replaces every {{KEY}} placeholder
// with its value from the context.
func (r *Renderer) Render(name string, context map[string]string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, filepath.Base(name)))
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	rendered := string(raw)
	for key, value := range context {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}
	return rendered, nil
}
