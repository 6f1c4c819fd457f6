package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/mesh"
	"github.com/san-kum/deformsim/internal/tissue"
)

func benchMesh(b *testing.B, n int) *mesh.State {
	b.Helper()
	positions := make([]r3.Vec, n)
	normals := make([]r3.Vec, n)
	for i := range positions {
		theta := 2 * math.Pi * float64(i) / float64(n)
		positions[i] = r3.Vec{X: 5 * math.Cos(theta), Y: 5 * math.Sin(theta), Z: float64(i % 3)}
		normals[i] = r3.Unit(positions[i])
	}
	ms := mesh.New()
	if err := ms.Load(positions, normals); err != nil {
		b.Fatal(err)
	}
	return ms
}

func benchStep(b *testing.B, n, minChunk int) {
	ms := benchMesh(b, n)
	integ := &Integrator{MinChunk: minChunk}
	it := tissue.Interaction{
		ProbePos: r3.Vec{X: 5},
		Kind:     tissue.VolumetricProbe,
		Active:   true,
		Force:    60,
	}
	params := ParamsFor(tissue.ModeSoft)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(ms, contact.ForNose(), it, tissue.ModeSoft, params, 0.01)
	}
}

func BenchmarkStep1kSerial(b *testing.B)     { benchStep(b, 1000, 1<<20) }
func BenchmarkStep10kSerial(b *testing.B)    { benchStep(b, 10000, 1<<20) }
func BenchmarkStep10kParallel(b *testing.B)  { benchStep(b, 10000, 512) }
func BenchmarkStep100kParallel(b *testing.B) { benchStep(b, 100000, 1024) }
