package sim

import (
	"github.com/go-gl/mathgl/mgl32"
)

// boxVertices is a unit cube centered on the origin as 36 position+normal
// vertices, ready for a non-indexed draw.
func boxVertices() []float32 {
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {1, 1}, {-1, 1}, {-1, -1}}

	out := make([]float32, 0, 36*6)
	for _, f := range faces {
		center := f.normal.Mul(0.5)
		for _, c := range corners {
			p := center.Add(f.u.Mul(0.5 * c[0])).Add(f.v.Mul(0.5 * c[1]))
			out = append(out, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return out
}

// planeParts are the proxy boxes of the aircraft in model space, nose along
// +Z, in the same order as Scene.PlaneTint: fuselage, wings, tail.
var planeParts = [3]mgl32.Mat4{
	mgl32.Scale3D(1.2, 1.2, 8),
	mgl32.Translate3D(0, 0, 0.5).Mul4(mgl32.Scale3D(10, 0.3, 1.6)),
	mgl32.Translate3D(0, 1, -3.5).Mul4(mgl32.Scale3D(3, 1.5, 0.8)),
}

// PlaneModel places the aircraft: heading about Y, then the pitch and bank
// attitude written by Tick.
func PlaneModel(p PlaneState) mgl32.Mat4 {
	t := mgl32.Translate3D(float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(p.Rotation.Y)))
	pitch := mgl32.HomogRotate3DX(mgl32.DegToRad(float32(p.Rotation.X)))
	bank := mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(p.Rotation.Z)))
	return t.Mul4(yaw).Mul4(pitch).Mul4(bank)
}
