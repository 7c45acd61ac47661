package shader

import (
	"embed"
	"fmt"
)

//go:embed glsl/*.vert glsl/*.frag glsl/*.glsl
var glslFS embed.FS

// Program names.
const (
	Surface    = "surface"
	Atmosphere = "atmosphere"
	Basic      = "basic"
)

const versionLine = "#version 410 core\n\n"

// Sources returns the vertex and fragment source of a program. Fragment
// sources get the version line and the shared tone-mapping helpers prepended.
func Sources(name string) (vertex, fragment string, err error) {
	vert, err := glslFS.ReadFile("glsl/sphere.vert")
	if err != nil {
		return "", "", err
	}
	common, err := glslFS.ReadFile("glsl/common.glsl")
	if err != nil {
		return "", "", err
	}
	body, err := glslFS.ReadFile("glsl/" + name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("unknown program %q: %w", name, err)
	}
	return string(vert), versionLine + string(common) + "\n" + string(body), nil
}
