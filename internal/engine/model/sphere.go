package model

import (
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// NewSphere builds a unit UV sphere with the given segment counts. Vertices
// of a row share a latitude; the seam column is duplicated so U runs
// 0 to 1 without wrapping. Pole rows shift U by half a segment so each
// pole triangle samples the middle of its wedge. Triangles wind
// counter-clockwise seen from outside.
func NewSphere(widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Bounds: Bounds{
			Min: [3]float32{1, 1, 1},
			Max: [3]float32{-1, -1, -1},
		},
	}
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			p := m.SphereDirection(u, 1-v)

			vert := Vertex{
				Position: p.Array(),
				Normal:   p.Normalize().Array(),
				TexCoord: [2]float32{u + uOffset, 1 - v},
			}
			mesh.Bounds.extend(vert.Position)
			row[ix] = uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, vert)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// The pole rows collapse to a point; skip their degenerate halves.
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh
}
