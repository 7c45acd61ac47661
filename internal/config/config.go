// Package config handles scene configuration loading and management.
package config

// Config holds all viewer settings and the scene definition.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Sun        SunConfig        `yaml:"sun"`
	Shading    ShadingConfig    `yaml:"shading"`
	Bodies     []BodyConfig     `yaml:"bodies"`
	Assets     AssetsConfig     `yaml:"assets"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fullscreen     bool    `yaml:"fullscreen"`
	VSync          bool    `yaml:"vsync"`
	FPSLimit       int     `yaml:"fps_limit"`
	ShowFPS        bool    `yaml:"show_fps"`
	Exposure       float32 `yaml:"exposure"`
	Background     string  `yaml:"background"`      // hex sRGB
	SphereSegments int     `yaml:"sphere_segments"` // width and height segments of the shared sphere
	ScreenshotDir  string  `yaml:"screenshot_dir"`
}

// CameraConfig holds the orbit camera's starting pose and limits.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Damping     float32    `yaml:"damping"` // fraction of velocity lost per tick
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// SimulationConfig controls the tick loop.
type SimulationConfig struct {
	Paused   bool `yaml:"paused"`
	TickRate int  `yaml:"tick_rate"` // ticks per second; orbit speeds are per tick
}

// SunConfig places the star and describes its light. The position is given
// in spherical coordinates: polar angle from +Y, azimuth from +Z.
type SunConfig struct {
	Distance  float64 `yaml:"distance"`
	Polar     float64 `yaml:"polar"`   // degrees
	Azimuth   float64 `yaml:"azimuth"` // degrees
	Radius    float64 `yaml:"radius"`
	Spin      float64 `yaml:"spin"`
	Texture   string  `yaml:"texture"`
	Color     string  `yaml:"color"` // fallback when the texture is missing
	Light     string  `yaml:"light"` // point light color
	Intensity float32 `yaml:"intensity"`
	Decay     float32 `yaml:"decay"`
	Ambient   float32 `yaml:"ambient"`
}

// ShadingConfig holds the tunable constants of the day/night and atmosphere models.
type ShadingConfig struct {
	TerminatorLow    float32 `yaml:"terminator_low"`
	TerminatorHigh   float32 `yaml:"terminator_high"`
	TerminatorTint   float32 `yaml:"terminator_tint"`
	CloudLow         float32 `yaml:"cloud_low"`
	CloudHigh        float32 `yaml:"cloud_high"`
	CloudStrength    float32 `yaml:"cloud_strength"`
	SpecularExponent float32 `yaml:"specular_exponent"`
	SpecularStrength float32 `yaml:"specular_strength"`
	FresnelExponent  float32 `yaml:"fresnel_exponent"`
	GlowLow          float32 `yaml:"glow_low"`
	GlowHigh         float32 `yaml:"glow_high"`
}

// BodyConfig describes one planet. Speed and spin are radians per tick.
type BodyConfig struct {
	Name     string         `yaml:"name"`
	Radius   float64        `yaml:"radius"`
	Distance float64        `yaml:"distance"`
	Speed    float64        `yaml:"speed"`
	Spin     float64        `yaml:"spin"`
	Phase    float64        `yaml:"phase"`
	Texture  string         `yaml:"texture,omitempty"`
	Color    string         `yaml:"color,omitempty"`
	Surface  *SurfaceConfig `yaml:"surface,omitempty"`
	Moons    []MoonConfig   `yaml:"moons,omitempty"`
}

// Shaded reports whether the body uses the day/night surface model.
func (b BodyConfig) Shaded() bool {
	return b.Surface != nil
}

// SurfaceConfig turns a body into a day/night shaded body with an atmosphere.
type SurfaceConfig struct {
	DayTexture            string           `yaml:"day_texture"`
	NightTexture          string           `yaml:"night_texture"`
	SpecularCloudsTexture string           `yaml:"specular_clouds_texture"`
	Atmosphere            AtmosphereConfig `yaml:"atmosphere"`
}

// AtmosphereConfig holds the two editable tints and the shell size.
type AtmosphereConfig struct {
	DayColor      string  `yaml:"day_color"`
	TwilightColor string  `yaml:"twilight_color"`
	Scale         float64 `yaml:"scale"`
}

// MoonConfig describes a moon in world units, relative to its planet's center.
type MoonConfig struct {
	Name     string  `yaml:"name"`
	Radius   float64 `yaml:"radius"`
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`
	Spin     float64 `yaml:"spin"`
	Phase    float64 `yaml:"phase"`
	Texture  string  `yaml:"texture,omitempty"`
	Color    string  `yaml:"color,omitempty"`
}

// AssetsConfig tells the asset manager where textures live.
type AssetsConfig struct {
	Dirs []string `yaml:"dirs"`

	// Procedural generates stand-in textures for any that cannot be loaded.
	Procedural     bool  `yaml:"procedural"`
	ProceduralSize int   `yaml:"procedural_size"`
	Seed           int64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config describing the inner solar system scene.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          1280,
			Height:         720,
			Fullscreen:     false,
			VSync:          true,
			FPSLimit:       0,
			Exposure:       1.1,
			Background:     "#000000",
			SphereSegments: 32,
			ScreenshotDir:  "screenshots",
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 20, 80},
			FOV:         20,
			Near:        0.1,
			Far:         500,
			Damping:     0.05,
			MinDistance: 5,
			MaxDistance: 300,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		Sun: SunConfig{
			Distance:  1,
			Polar:     90,
			Azimuth:   0,
			Radius:    5,
			Spin:      0.005,
			Texture:   "textures/sun.jpg",
			Color:     "#ffcc55",
			Light:     "#ffffff",
			Intensity: 400,
			Decay:     2,
			Ambient:   0.2,
		},
		Shading: DefaultShading(),
		Bodies:  DefaultBodies(),
		Assets: AssetsConfig{
			Dirs:           []string{"static", "assets"},
			Procedural:     true,
			ProceduralSize: 512,
			Seed:           1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultShading returns the tuned shading constants.
func DefaultShading() ShadingConfig {
	return ShadingConfig{
		TerminatorLow:    -0.25,
		TerminatorHigh:   0.5,
		TerminatorTint:   0.15,
		CloudLow:         0.5,
		CloudHigh:        1.0,
		CloudStrength:    1.0,
		SpecularExponent: 32,
		SpecularStrength: 1.0,
		FresnelExponent:  3.0,
		GlowLow:          -0.5,
		GlowHigh:         0.0,
	}
}

// DefaultBodies returns Mercury, Venus, Earth and Mars with their moons.
// Moon sizes and distances are world units.
func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{
			Name: "Mercury", Radius: 1.2, Distance: 10, Speed: 0.01, Spin: 0.02,
			Texture: "textures/mercury.jpg", Color: "#8c8680",
		},
		{
			Name: "Venus", Radius: 1.5, Distance: 15, Speed: 0.007, Spin: 0.015,
			Texture: "textures/venus.jpg", Color: "#d9b77a",
		},
		{
			Name: "Earth", Radius: 1.9, Distance: 22, Speed: 0.005, Spin: 0.01,
			Surface: &SurfaceConfig{
				DayTexture:            "earth/day.jpg",
				NightTexture:          "earth/night.jpg",
				SpecularCloudsTexture: "earth/specularClouds.jpg",
				Atmosphere: AtmosphereConfig{
					DayColor:      "#00aaff",
					TwilightColor: "#ff6600",
					Scale:         1.04,
				},
			},
			Moons: []MoonConfig{
				{Name: "Moon", Radius: 0.57, Distance: 3.8, Speed: 0.015, Texture: "textures/moon.jpg", Color: "#9a9a9a"},
			},
		},
		{
			Name: "Mars", Radius: 1, Distance: 27, Speed: 0.003, Spin: 0.01,
			Texture: "textures/mars.jpg", Color: "#b5532f",
			Moons: []MoonConfig{
				{Name: "Phobos", Radius: 0.6, Distance: 2, Speed: 0.02, Texture: "textures/moon.jpg", Color: "#7d7468"},
				{Name: "Deimos", Radius: 0.3, Distance: 3, Speed: 0.015, Texture: "textures/moon.jpg", Color: "#8a8072"},
			},
		},
	}
}

// Body returns the named body definition.
func (c *Config) Body(name string) (*BodyConfig, bool) {
	for i := range c.Bodies {
		if c.Bodies[i].Name == name {
			return &c.Bodies[i], true
		}
	}
	return nil, false
}
