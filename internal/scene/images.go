package scene

import (
	"errors"
	"hash/fnv"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/assets"
	"github.com/Faultbox/orbitshade/internal/config"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/shading"
)

// ImageSource turns texture references into decoded images. Files come
// from the asset manager; when a file is missing and procedural textures
// are enabled a generated stand-in is returned instead.
type ImageSource struct {
	assets     *assets.Manager
	procedural bool
	size       int
	seed       int64

	terrainOnce sync.Once
	terrain     *assets.Terrain

	log *zap.Logger
}

// NewImageSource creates a source over mgr using the asset settings.
func NewImageSource(mgr *assets.Manager, cfg config.AssetsConfig) *ImageSource {
	return &ImageSource{
		assets:     mgr,
		procedural: cfg.Procedural,
		size:       cfg.ProceduralSize,
		seed:       cfg.Seed,
		log:        logger.Named("textures"),
	}
}

// Image returns the image for ref. ok is false when neither a file nor a
// generated stand-in is available; callers then draw ref.Fallback.
func (s *ImageSource) Image(ref TextureRef) (img image.Image, ok bool) {
	if ref.Name != "" && s.assets != nil {
		decoded, err := s.assets.Image(ref.Name)
		if err == nil {
			return decoded, true
		}
		if !errors.Is(err, assets.ErrNotFound) {
			s.log.Warn("texture unreadable", zap.String("name", ref.Name), zap.Error(err))
		} else {
			s.log.Debug("texture not found", zap.String("name", ref.Name))
		}
	}
	if !s.procedural {
		return nil, false
	}
	return s.generate(ref), true
}

func (s *ImageSource) generate(ref TextureRef) image.Image {
	switch ref.Slot {
	case SlotDay:
		return s.planet().Day()
	case SlotNight:
		return s.planet().Night()
	case SlotSpecularClouds:
		return s.planet().SpecularClouds()
	default:
		return assets.Albedo(s.size/2, s.seed+nameSeed(ref.Name), ref.Fallback.SRGB().NRGBA())
	}
}

// planet generates the shared terrain on first use so the three surface
// textures line up.
func (s *ImageSource) planet() *assets.Terrain {
	s.terrainOnce.Do(func() {
		s.log.Info("generating procedural planet", zap.Int("size", s.size), zap.Int64("seed", s.seed))
		s.terrain = assets.GenerateTerrain(s.size, s.seed)
	})
	return s.terrain
}

// Sampler returns a CPU sampler for ref, or nil when there is no image.
func (s *ImageSource) Sampler(ref TextureRef) shading.Sampler {
	img, ok := s.Image(ref)
	if !ok {
		return nil
	}
	return shading.NewImageSampler(img, ref.Slot.SRGB())
}

// TextureSet resolves a surface material into CPU samplers. Slots with no
// image are left nil and sample their fallback color.
func (s *ImageSource) TextureSet(mat SurfaceMaterial) shading.TextureSet {
	return shading.TextureSet{
		Day:            s.Sampler(mat.Day),
		Night:          s.Sampler(mat.Night),
		SpecularClouds: s.Sampler(mat.SpecularClouds),
	}
}

func nameSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64() >> 1)
}
