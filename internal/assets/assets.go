// Package assets finds, decodes and caches texture images, and generates
// procedural stand-ins when a texture is not available.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/orbitshade/internal/logger"
)

// ErrNotFound is returned when no search directory holds the asset.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset names against a list of directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
	log   *zap.Logger
}

// NewManager creates a new asset manager searching dirs in order.
func NewManager(dirs ...string) *Manager {
	return &Manager{
		dirs:  append([]string(nil), dirs...),
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// AddDir appends a search directory.
// Directories are searched in the order they were added.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Resolve returns the first existing path for name. Absolute names are
// checked as they are.
func (m *Manager) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, dir := range m.dirs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %v)", ErrNotFound, name, m.dirs)
}

// Image loads and decodes an image, returning the cached copy on repeat calls.
func (m *Manager) Image(name string) (image.Image, error) {
	// Check cache first
	if img, ok := m.cache.Get(name); ok {
		return img, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	m.log.Debug("loaded texture",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	m.cache.Set(name, img)
	return img, nil
}

// Cache exposes the decoded image cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops every cached image.
func (m *Manager) Close() {
	hits, misses := m.cache.Stats()
	m.log.Debug("asset cache closed", zap.Int("hits", hits), zap.Int("misses", misses))
	m.cache.Clear()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// Cache is a simple in-memory cache for decoded images.
type Cache struct {
	data map[string]image.Image
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]image.Image),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]image.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
