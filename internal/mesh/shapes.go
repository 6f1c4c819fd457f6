package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Organ placeholder dimensions: a unit sphere squashed to 1.5 x 1.0 x 0.6
// and blown up by 5, the stand-in used before a real model is imported.
const (
	placeholderScale = 5.0
	placeholderSX    = 1.5
	placeholderSY    = 1.0
	placeholderSZ    = 0.6
)

// Ellipsoid generates a lat/long placeholder organ. Normals are the
// analytic ellipsoid gradient, unit length.
func Ellipsoid(rings, segments int) (positions, normals []r3.Vec) {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	a := placeholderScale * placeholderSX
	b := placeholderScale * placeholderSY
	c := placeholderScale * placeholderSZ

	for i := 0; i <= rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)

			sx := math.Sin(phi) * math.Cos(theta)
			sy := math.Sin(phi) * math.Sin(theta)
			sz := math.Cos(phi)

			positions = append(positions, r3.Vec{X: a * sx, Y: b * sy, Z: c * sz})

			// Gradient of (x/a)^2+(y/b)^2+(z/c)^2.
			n := r3.Vec{X: sx / a, Y: sy / b, Z: sz / c}
			normals = append(normals, r3.Unit(n))
		}
	}

	return positions, normals
}

// Cylinder generates an open lathed tube: a res x res grid of vertices with
// radial normals and quad faces, the sculpting test surface.
func Cylinder(radius, height float64, res int) (positions, normals []r3.Vec, faces [][4]int) {
	if res < 2 {
		res = 2
	}

	for r := 0; r < res; r++ {
		theta := 2 * math.Pi * float64(r) / float64(res-1)
		for c := 0; c < res; c++ {
			z := height * float64(c) / float64(res-1)

			positions = append(positions, r3.Vec{
				X: radius * math.Cos(theta),
				Y: radius * math.Sin(theta),
				Z: z,
			})
			normals = append(normals, r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
		}
	}

	for r := 0; r < res-1; r++ {
		for c := 0; c < res-1; c++ {
			p1 := r*res + c
			p2 := r*res + c + 1
			p3 := (r+1)*res + c + 1
			p4 := (r+1)*res + c
			faces = append(faces, [4]int{p1, p2, p3, p4})
		}
	}

	return positions, normals, faces
}
