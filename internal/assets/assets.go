// Package assets loads and caches avatar asset files from an asset root.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/playforge/avatarview/pkg/formats"
)

// Asset resolution errors.
var (
	ErrNotFound        = errors.New("asset not found")
	ErrTextureNotFound = errors.New("no texture path variant resolved")
)

// Manager loads files from a root directory with an in-memory byte cache.
// Decoded textures are cached separately so repeated slot builds do not
// re-decode PNGs.
type Manager struct {
	root string

	mu       sync.RWMutex
	files    map[string][]byte
	textures map[string]*image.NRGBA
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		root:     dir,
		files:    make(map[string][]byte),
		textures: make(map[string]*image.NRGBA),
	}
}

// Load reads a file relative to the asset root, consulting the cache first.
func (m *Manager) Load(path string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.files[path]
	m.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(m.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	m.mu.Lock()
	m.files[path] = data
	m.mu.Unlock()
	return data, nil
}

// Texture resolves a texture path to a decoded NRGBA image. Candidate
// variants are tried in order: the path as given, with a .png suffix, and
// under the textures/ directory.
func (m *Manager) Texture(path string) (*image.NRGBA, error) {
	m.mu.RLock()
	img, ok := m.textures[path]
	m.mu.RUnlock()
	if ok {
		return img, nil
	}

	for _, candidate := range textureCandidates(path) {
		data, err := m.Load(candidate)
		if err != nil {
			continue
		}
		decoded, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", candidate, err)
		}
		img = toNRGBA(decoded)

		m.mu.Lock()
		m.textures[path] = img
		m.mu.Unlock()
		return img, nil
	}

	return nil, fmt.Errorf("%s: %w", path, ErrTextureNotFound)
}

// Model loads and parses a model document.
func (m *Manager) Model(path string) (*formats.Model, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := formats.ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Animation loads and parses an animation document.
func (m *Manager) Animation(path string) (*formats.Animation, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := formats.ParseAnimation(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Avatar loads and parses an avatar descriptor.
func (m *Manager) Avatar(path string) (*formats.AvatarDescriptor, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := formats.ParseAvatar(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Clear drops all cached bytes and decoded textures.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string][]byte)
	m.textures = make(map[string]*image.NRGBA)
}

// textureCandidates lists the path variants tried for a texture reference.
func textureCandidates(path string) []string {
	candidates := []string{path}
	if filepath.Ext(path) == "" {
		candidates = append(candidates, path+".png")
	}
	if filepath.Dir(path) == "." {
		candidates = append(candidates, "textures/"+path)
		if filepath.Ext(path) == "" {
			candidates = append(candidates, "textures/"+path+".png")
		}
	}
	return candidates
}

// toNRGBA converts any decoded image to NRGBA without premultiplying.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
