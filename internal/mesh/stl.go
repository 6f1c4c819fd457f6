package mesh

import (
	"fmt"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/tissue"
)

// importScale is the target max dimension for imported models; everything
// is centered and rescaled so probe radii mean the same thing across files.
const importScale = 10.0

// ImportSTL reads an STL file and welds its triangle soup into position and
// per-vertex normal arrays in a stable first-seen order. Face normals are
// accumulated at shared vertices and renormalized; degenerate vertices fall
// back to Z-up.
func ImportSTL(path string) (positions, normals []r3.Vec, err error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("import stl: %w", err)
	}
	return weld(solid)
}

func weld(solid *stl.Solid) (positions, normals []r3.Vec, err error) {
	if len(solid.Triangles) == 0 {
		return nil, nil, tissue.ErrInvalidMesh
	}

	index := make(map[stl.Vec3]int)

	for _, tri := range solid.Triangles {
		n := faceNormal(tri)
		for _, v := range tri.Vertices {
			i, ok := index[v]
			if !ok {
				i = len(positions)
				index[v] = i
				positions = append(positions, r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
				normals = append(normals, r3.Vec{})
			}
			normals[i] = r3.Add(normals[i], n)
		}
	}

	for i := range normals {
		if r3.Norm(normals[i]) < 1e-12 {
			normals[i] = r3.Vec{Z: 1}
			continue
		}
		normals[i] = r3.Unit(normals[i])
	}

	normalizeExtent(positions)
	return positions, normals, nil
}

func faceNormal(tri stl.Triangle) r3.Vec {
	n := r3.Vec{X: float64(tri.Normal[0]), Y: float64(tri.Normal[1]), Z: float64(tri.Normal[2])}
	if r3.Norm(n) > 1e-12 {
		return r3.Unit(n)
	}

	// Header normal missing; derive from winding.
	a := toVec(tri.Vertices[0])
	b := toVec(tri.Vertices[1])
	c := toVec(tri.Vertices[2])
	cross := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm(cross) < 1e-12 {
		return r3.Vec{Z: 1}
	}
	return r3.Unit(cross)
}

func toVec(v [3]float32) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// normalizeExtent centers the model and scales its largest dimension to
// importScale, in place.
func normalizeExtent(positions []r3.Vec) {
	if len(positions) == 0 {
		return
	}

	min := positions[0]
	max := positions[0]
	for _, p := range positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}

	dims := r3.Sub(max, min)
	maxDim := dims.X
	if dims.Y > maxDim {
		maxDim = dims.Y
	}
	if dims.Z > maxDim {
		maxDim = dims.Z
	}
	if maxDim < 1e-12 {
		return
	}

	scale := importScale / maxDim
	center := r3.Scale(0.5, r3.Add(min, max))
	for i := range positions {
		positions[i] = r3.Scale(scale, r3.Sub(positions[i], center))
	}
}
