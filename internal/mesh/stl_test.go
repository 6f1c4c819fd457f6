package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/hschendel/stl"

	"github.com/san-kum/deformsim/internal/tissue"
)

func TestWeldSharesVertices(t *testing.T) {
	// Two triangles sharing an edge: 6 corners, 4 distinct vertices.
	solid := &stl.Solid{
		Triangles: []stl.Triangle{
			{
				Normal:   stl.Vec3{0, 0, 1},
				Vertices: [3]stl.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			},
			{
				Normal:   stl.Vec3{0, 0, 1},
				Vertices: [3]stl.Vec3{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			},
		},
	}

	positions, normals, err := weld(solid)
	if err != nil {
		t.Fatalf("weld failed: %v", err)
	}

	if len(positions) != 4 {
		t.Errorf("expected 4 welded vertices, got %d", len(positions))
	}
	if len(normals) != len(positions) {
		t.Fatalf("normals length %d != positions length %d", len(normals), len(positions))
	}

	for i, n := range normals {
		if math.Abs(n.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal %v, want +Z", i, n)
		}
	}
}

func TestWeldNormalizesExtent(t *testing.T) {
	solid := &stl.Solid{
		Triangles: []stl.Triangle{
			{
				Normal:   stl.Vec3{0, 0, 1},
				Vertices: [3]stl.Vec3{{0, 0, 0}, {100, 0, 0}, {0, 40, 0}},
			},
		},
	}

	positions, _, err := weld(solid)
	if err != nil {
		t.Fatalf("weld failed: %v", err)
	}

	minX, maxX := positions[0].X, positions[0].X
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}

	if math.Abs((maxX-minX)-importScale) > 1e-6 {
		t.Errorf("largest dimension %f, want %f", maxX-minX, importScale)
	}
	if math.Abs(minX+maxX) > 1e-6 {
		t.Errorf("model not centered: [%f, %f]", minX, maxX)
	}
}

func TestWeldEmptySolid(t *testing.T) {
	_, _, err := weld(&stl.Solid{})
	if !errors.Is(err, tissue.ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh, got %v", err)
	}
}

func TestWeldDerivesMissingNormal(t *testing.T) {
	solid := &stl.Solid{
		Triangles: []stl.Triangle{
			{
				// Zero header normal: derive +Z from CCW winding.
				Vertices: [3]stl.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			},
		},
	}

	_, normals, err := weld(solid)
	if err != nil {
		t.Fatalf("weld failed: %v", err)
	}
	for i, n := range normals {
		if math.Abs(n.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal %v, want derived +Z", i, n)
		}
	}
}
