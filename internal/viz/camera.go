package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world-space vertices onto the Braille canvas.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, RotX: -0.4, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// rotate applies the camera's euler angles to a point.
func (c *Camera) rotate(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to sub-pixel canvas coordinates.
// The canvas is cw x ch characters, 2x4 sub-pixels each.
func (c *Camera) Project(p r3.Vec, cw, ch int) (int, int, bool) {
	rot := r3.Scale(c.Zoom, c.rotate(p))

	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)

	sw, sh := cw*2, ch*4
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 24.0

	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// DrawPoints plots a vertex cloud onto the canvas.
func DrawPoints(c *Canvas, cam *Camera, points []r3.Vec) {
	for _, p := range points {
		if x, y, ok := cam.Project(p, c.Width, c.Height); ok {
			c.Set(x, y)
		}
	}
}

// DrawMarker plots a small cross at a world point.
func DrawMarker(c *Canvas, cam *Camera, p r3.Vec) {
	x, y, ok := cam.Project(p, c.Width, c.Height)
	if !ok {
		return
	}
	c.DrawLine(x-2, y, x+2, y)
	c.DrawLine(x, y-2, x, y+2)
}
