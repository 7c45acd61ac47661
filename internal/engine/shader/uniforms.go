package shader

import "github.com/go-gl/gl/v4.1-core/gl"

// Uniform names shared by the Go renderer and the GLSL sources.
const (
	UniformModel      = "uModel"
	UniformView       = "uView"
	UniformProjection = "uProjection"
	UniformExposure   = "uExposure"
	UniformCamera     = "uCameraPosition"

	UniformDayTexture       = "uDayTexture"
	UniformNightTexture     = "uNightTexture"
	UniformSpecularClouds   = "uSpecularCloudsTexture"
	UniformSunDirection     = "uSunDirection"
	UniformDayTint          = "uAtmosphereDayColor"
	UniformTwilightTint     = "uAtmosphereTwilightColor"
	UniformTerminatorLow    = "uTerminatorLow"
	UniformTerminatorHigh   = "uTerminatorHigh"
	UniformTerminatorTint   = "uTerminatorTint"
	UniformCloudLow         = "uCloudLow"
	UniformCloudHigh        = "uCloudHigh"
	UniformCloudStrength    = "uCloudStrength"
	UniformSpecularExp      = "uSpecularExponent"
	UniformSpecularStrength = "uSpecularStrength"
	UniformFresnelExponent  = "uFresnelExponent"
	UniformGlowLow          = "uGlowLow"
	UniformGlowHigh         = "uGlowHigh"

	UniformAlbedoTexture  = "uAlbedoTexture"
	UniformLightPosition  = "uLightPosition"
	UniformLightColor     = "uLightColor"
	UniformLightIntensity = "uLightIntensity"
	UniformLightDecay     = "uLightDecay"
	UniformAmbient        = "uAmbient"
	UniformUnlit          = "uUnlit"
)

// UniformCache caches uniform locations to avoid repeated gl.GetUniformLocation calls.
// Missing uniforms are cached as -1 too.
type UniformCache struct {
	locations map[string]int32
	program   uint32
	lookup    func(program uint32, name string) int32
}

// NewUniformCache creates a new uniform cache for a shader program.
func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
		lookup:    glLookup,
	}
}

// Location returns the cached uniform location or fetches and caches it.
func (uc *UniformCache) Location(name string) int32 {
	if loc, ok := uc.locations[name]; ok {
		return loc
	}
	loc := uc.lookup(uc.program, name)
	uc.locations[name] = loc
	return loc
}

// Len returns how many names are cached.
func (uc *UniformCache) Len() int {
	return len(uc.locations)
}

// Clear clears the cache (call when shader program changes).
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}

func glLookup(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
