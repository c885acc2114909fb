package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts resolves sticker glyph faces by pixel size. The optional extra
// font is tried before Go Regular, so an emoji font can take precedence.
type Fonts struct {
	mu      sync.Mutex
	sources []*text.FontSource
	faces   map[float64]text.Face
}

// LoadFonts loads Go Regular and, when extraPath is not empty, the font
// file at extraPath.
func LoadFonts(extraPath string) (*Fonts, error) {
	f := &Fonts{faces: make(map[float64]text.Face)}
	if extraPath != "" {
		src, err := text.NewFontSourceFromFile(extraPath)
		if err != nil {
			return nil, fmt.Errorf("render: load sticker font %s: %w", extraPath, err)
		}
		f.sources = append(f.sources, src)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("render: load default font: %w", err)
	}
	f.sources = append(f.sources, src)
	return f, nil
}

// Face returns a face of the given size, caching it. It returns nil
// once the fonts are closed.
func (f *Fonts) Face(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sources) == 0 {
		return nil
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	faces := make([]text.Face, 0, len(f.sources))
	for _, src := range f.sources {
		faces = append(faces, src.Face(size))
	}
	var face text.Face = faces[len(faces)-1]
	if len(faces) > 1 {
		if multi, err := text.NewMultiFace(faces...); err == nil {
			face = multi
		}
	}
	f.faces[size] = face
	return face
}

// Close releases the font sources.
func (f *Fonts) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var first error
	for _, src := range f.sources {
		if err := src.Close(); err != nil && first == nil {
			first = err
		}
	}
	f.sources = nil
	f.faces = map[float64]text.Face{}
	return first
}
