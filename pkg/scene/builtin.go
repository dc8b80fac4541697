package scene

import (
	"github.com/df07/go-optical-raytracer/pkg/beam"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// NewSingleSurfaceScene creates one convex surface (z0=100, c=0.03, n 1->1.5)
// imaged onto an output plane at z=250
func NewSingleSurfaceScene() *Scene {
	surface := must(optics.NewSphericalRefraction(100, 0.03, 1, 1.5, 30))
	return &Scene{
		Name:        "single-surface",
		Description: "Convex surface from air into glass, detector at z=250",
		System:      optics.NewSystem(surface, optics.NewOutputPlane(250)),
		Beam:        Beam{Rings: 5, Radius: 10, Z: 0},
	}
}

// NewParaxialFocusScene traces a thin ring of near-axis rays through the
// single-surface system to locate its paraxial focus
func NewParaxialFocusScene() *Scene {
	surface := must(optics.NewSphericalRefraction(100, 0.03, 1, 1.5, 30))
	return &Scene{
		Name:        "paraxial-focus",
		Description: "0.1 mm ring of rays for estimating the paraxial focus",
		System:      optics.NewSystem(surface, optics.NewOutputPlane(120)),
		Beam:        Beam{Counts: []int{11}, Radii: []float64{0.1}, Z: 0},
	}
}

// NewCollimatedBeamScene creates a 5 mm collimated beam of concentric
// circles through the single surface onto a detector at z=300
func NewCollimatedBeamScene() *Scene {
	surface := must(optics.NewSphericalRefraction(100, 0.03, 1, 1.5, 30))
	counts := []int{3, 10, 20, 30, 40, 50}
	return &Scene{
		Name:        "collimated-beam",
		Description: "5 mm collimated beam of concentric circles, detector at z=300",
		System:      optics.NewSystem(surface, optics.NewOutputPlane(300)),
		Beam:        Beam{Counts: counts, Radii: beam.Linspace(1, 5, len(counts)), Z: 0},
	}
}

// NewPlanoConvexScene creates a plano-convex lens, flat side facing the beam.
// Back surface radius is 50, so the back focus lies 100 behind it.
func NewPlanoConvexScene() *Scene {
	front := must(optics.NewPlaneRefraction(100, 1, 1.5, 20))
	back := must(optics.NewSphericalRefraction(105, -0.02, 1.5, 1, 20))
	return &Scene{
		Name:        "plano-convex",
		Description: "Plano-convex lens, flat side first, detector at the back focus",
		System:      optics.NewSystem(front, back, optics.NewOutputPlane(205)),
		Beam:        Beam{Rings: 4, Radius: 5, Z: 0},
	}
}

// NewBiconvexScene creates a symmetric biconvex lens with 50 mm surface radii
func NewBiconvexScene() *Scene {
	front := must(optics.NewSphericalRefraction(100, 0.02, 1, 1.5, 20))
	back := must(optics.NewSphericalRefraction(110, -0.02, 1.5, 1, 20))
	return &Scene{
		Name:        "biconvex",
		Description: "Symmetric biconvex lens, detector near the back focus",
		System:      optics.NewSystem(front, back, optics.NewOutputPlane(160)),
		Beam:        Beam{Rings: 4, Radius: 5, Z: 0},
	}
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "single-surface", Name: "Single Surface", Description: "Convex surface from air into glass, detector at z=250"}, NewSingleSurfaceScene},
	{SceneInfo{ID: "paraxial-focus", Name: "Paraxial Focus", Description: "0.1 mm ring of rays for estimating the paraxial focus"}, NewParaxialFocusScene},
	{SceneInfo{ID: "collimated-beam", Name: "Collimated Beam", Description: "5 mm collimated beam of concentric circles"}, NewCollimatedBeamScene},
	{SceneInfo{ID: "plano-convex", Name: "Plano-Convex Lens", Description: "Plano-convex lens, flat side first"}, NewPlanoConvexScene},
	{SceneInfo{ID: "biconvex", Name: "Biconvex Lens", Description: "Symmetric biconvex lens"}, NewBiconvexScene},
}

// BuiltinNames returns the IDs of the built-in scenes in listing order
func BuiltinNames() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.info.ID
	}
	return names
}

// Builtin creates the built-in scene with the given ID
func Builtin(id string) (*Scene, bool) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(), true
		}
	}
	return nil, false
}
