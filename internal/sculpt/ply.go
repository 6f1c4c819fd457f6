package sculpt

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WritePLY writes the surface as ASCII PLY with per-vertex colors.
func WritePLY(w io.Writer, s *Surface) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintf(bw, "element vertex %d\n", len(s.Pos))
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property float nx")
	fmt.Fprintln(bw, "property float ny")
	fmt.Fprintln(bw, "property float nz")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintf(bw, "element face %d\n", len(s.Faces))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	colors := s.Colors()
	for i, p := range s.Pos {
		n := s.Normals[i]
		c := colors[i]
		fmt.Fprintf(bw, "%.6f %.6f %.6f %.6f %.6f %.6f %d %d %d\n",
			p.X, p.Y, p.Z, n.X, n.Y, n.Z, c[0], c[1], c[2])
	}

	for _, f := range s.Faces {
		fmt.Fprintf(bw, "4 %d %d %d %d\n", f[0], f[1], f[2], f[3])
	}

	return bw.Flush()
}

// SavePLY writes the surface to a file.
func SavePLY(path string, s *Surface) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WritePLY(file, s)
}
