package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownScene = errors.New("unknown scene")

// Color is a linear RGBA color.
type Color struct{ R, G, B, A float32 }

// SceneObject is one placed piece of a scene. Meshes are drawn as proxy boxes
// of Extent, so only the placement and the material matter here.
type SceneObject struct {
	Name     string
	Position Vec3
	Scale    Vec3
	Extent   Vec3 // proxy box size in model units, before Scale
	Rotation float64
	Tint     Color
	Texture  string // texture the piece was authored with, empty if tint-only
	Terrain  bool   // drawn with the terrain (lit, textured) program
}

// Model returns the model matrix: translate, then yaw, then scale.
func (o SceneObject) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(float32(o.Position.X), float32(o.Position.Y), float32(o.Position.Z))
	r := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(o.Rotation)))
	s := mgl32.Scale3D(
		float32(o.Scale.X*o.Extent.X),
		float32(o.Scale.Y*o.Extent.Y),
		float32(o.Scale.Z*o.Extent.Z),
	)
	return t.Mul4(r).Mul4(s)
}

// Scene is a fixed layout plus the plane's material.
type Scene struct {
	Name        string
	Objects     []SceneObject
	PlaneTint   [3]Color
	PostProcess bool // render through an offscreen framebuffer and a screen quad
	FreeFly     bool // start with the first-person camera instead of the follow camera
}

// Terrain returns the pieces drawn with the terrain program, in layout order.
func (s Scene) Terrain() []SceneObject {
	out := make([]SceneObject, 0, len(s.Objects))
	for _, o := range s.Objects {
		if o.Terrain {
			out = append(out, o)
		}
	}
	return out
}

// Models returns the tint-only pieces drawn with the model program.
func (s Scene) Models() []SceneObject {
	out := make([]SceneObject, 0, len(s.Objects))
	for _, o := range s.Objects {
		if !o.Terrain {
			out = append(out, o)
		}
	}
	return out
}

var (
	garnet    = Color{0.8, 0.15, 0.3, 1}
	nearBlack = Color{0.1, 0.1, 0.1, 1}
	steel     = Color{0.5, 0.5, 0.5, 1}
	offWhite  = Color{0.85, 0.85, 0.85, 1}
	black     = Color{0, 0, 0, 1}
	white     = Color{1, 1, 1, 1}
)

// Texture names double as the proxy tint for textured pieces.
var textureTints = map[string]Color{
	"grass":  {0.3, 0.55, 0.2, 1},
	"road":   {0.3, 0.3, 0.32, 1},
	"roof":   {0.25, 0.5, 0.3, 1},
	"leaves": {0.2, 0.45, 0.15, 1},
	"tower":  {0.7, 0.68, 0.6, 1},
	"tile":   {0.9, 0.9, 0.88, 1},
	"girder": {0.45, 0.4, 0.35, 1},
	"map":    {0.35, 0.45, 0.3, 1},
	"floor":  {0.5, 0.5, 0.45, 1},
	"clouds": {0.95, 0.95, 1, 0.8},
}

func textured(name, texture string, pos, scale, extent Vec3) SceneObject {
	return SceneObject{
		Name:     name,
		Position: pos,
		Scale:    scale,
		Extent:   extent,
		Tint:     textureTints[texture],
		Texture:  texture,
		Terrain:  true,
	}
}

func tinted(name string, tint Color, pos, scale, extent Vec3) SceneObject {
	return SceneObject{
		Name:     name,
		Position: pos,
		Scale:    scale,
		Extent:   extent,
		Tint:     tint,
	}
}

// AirportScene is the Flight_Simulator layout: a terrain map under an airfield
// of hangars, a control tower, trees and a runway.
func AirportScene() Scene {
	buildings := Vec3{10, -7, 10}
	ground := Vec3{10, 0, 10}
	ten := Vec3{10, 10, 10}

	objects := []SceneObject{
		textured("terrain", "map", Vec3{0, -200, -180}, Vec3{0.1, 0.1, 0.1}, Vec3{40000, 10, 40000}),
		textured("hangar-roof", "roof", buildings, ten, Vec3{6, 0.3, 4}),
		tinted("deep-garnet", garnet, buildings, ten, Vec3{1, 1, 1}),
		textured("tree-leaves", "leaves", buildings, ten, Vec3{1, 2, 1}),
		textured("grass", "grass", ground, ten, Vec3{40, 0.01, 40}),
		textured("hangar-interior", "tile", buildings, ten, Vec3{5.8, 0.8, 3.8}),
		tinted("plane-metal-trim", steel, buildings, ten, Vec3{1, 0.2, 1}),
		textured("hangar-metal", "girder", buildings, ten, Vec3{6, 1, 4}),
		tinted("plane-black-trim", nearBlack, buildings, ten, Vec3{1, 0.2, 1}),
		tinted("plane-metal", offWhite, buildings, ten, Vec3{1.5, 0.3, 1.5}),
		textured("road", "road", ground, ten, Vec3{4, 0.01, 40}),
		tinted("tower-base", offWhite, buildings, ten, Vec3{1, 3, 1}),
		textured("tower-body", "tower", buildings, ten, Vec3{0.9, 3.5, 0.9}),
		tinted("tower-top-white", offWhite, buildings, ten, Vec3{1.2, 0.3, 1.2}),
		tinted("tower-top-black", black, buildings, ten, Vec3{1.1, 0.4, 1.1}),
		textured("foundation", "road", ground, ten, Vec3{8, 0.02, 6}),
	}

	return Scene{
		Name:      "airport",
		Objects:   objects,
		PlaneTint: [3]Color{garnet, nearBlack, steel},
	}
}

// HangarScene is the Lab8 layout: a floor, a cloud card, a parked plane and a
// control tower, composited through the post-process pass.
func HangarScene() Scene {
	objects := []SceneObject{
		textured("floor", "floor", Vec3{0, -0.5, 0}, Vec3{1, 1, 1}, Vec3{140, 0.01, 140}),
		textured("clouds", "clouds", Vec3{6, 25.5, 40}, Vec3{1, 1, 1}, Vec3{29, 10, 0.01}),
		tinted("parked-plane", offWhite, Vec3{10, 5, 20}, Vec3{1, 1, 1}, Vec3{6, 1.5, 5}),
		tinted("control-tower", white, Vec3{0, -0.5, -20}, Vec3{1, 1, 1}, Vec3{3, 12, 3}),
	}
	// A fan of grass cards; each card's yaw compounds on the previous one.
	yaw := 0.0
	for i := 0; i <= 15; i++ {
		yaw += float64(i) * 3.1415
		o := textured(fmt.Sprintf("grass-card-%02d", i), "grass", Vec3{0, 0, 0}, Vec3{1, 1, 1}, Vec3{2, 1, 0.01})
		o.Rotation = yaw
		objects = append(objects, o)
	}

	return Scene{
		Name:        "hangar",
		Objects:     objects,
		PlaneTint:   [3]Color{garnet, nearBlack, steel},
		PostProcess: true,
		FreeFly:     true,
	}
}

var scenes = map[string]func() Scene{
	"airport": AirportScene,
	"hangar":  HangarScene,
}

func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SceneByName(name string) (Scene, error) {
	build, ok := scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("scene %q: %w", name, ErrUnknownScene)
	}
	return build(), nil
}
