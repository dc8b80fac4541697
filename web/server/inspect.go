package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
	"github.com/df07/go-optical-raytracer/pkg/scene"
)

// InspectStep describes what one element did to the inspected ray
type InspectStep struct {
	Element     int                    `json:"element"`
	ElementType string                 `json:"elementType"`
	Status      string                 `json:"status"`
	Recorded    bool                   `json:"recorded"`            // a vertex was appended
	Point       *[3]float64            `json:"point,omitempty"`     // new vertex
	Direction   *[3]float64            `json:"direction,omitempty"` // direction leaving the vertex
	Properties  map[string]interface{} `json:"properties"`
}

// InspectResponse represents the JSON response for single-ray inspection
type InspectResponse struct {
	Scene      string        `json:"scene"`
	Start      [3]float64    `json:"start"`
	Direction  [3]float64    `json:"direction"`
	Steps      []InspectStep `json:"steps"`
	Terminated bool          `json:"terminated"`
	Vertices   [][3]float64  `json:"vertices"`
}

// extractElementInfo extracts element parameters with type assertions
func extractElementInfo(el optics.Element) (string, map[string]interface{}) {
	properties := map[string]interface{}{"z0": el.Z0()}

	switch e := el.(type) {
	case *optics.SphericalRefraction:
		properties["curvature"] = e.Curvature()
		properties["n1"] = e.N1()
		properties["n2"] = e.N2()
		properties["aperture"] = e.ApertureRadius()
		properties["strictTIR"] = e.TIRPolicy() == optics.TIRStrict
		return "spherical", properties

	case *optics.PlaneRefraction:
		properties["n1"] = e.N1()
		properties["n2"] = e.N2()
		properties["aperture"] = e.ApertureRadius()
		properties["strictTIR"] = e.TIRPolicy() == optics.TIRStrict
		return "plane", properties

	case *optics.OutputPlane:
		return "output", properties

	default:
		properties["name"] = el.Name()
		return "unknown", properties
	}
}

// inspectRay pushes one ray through the system one element at a time,
// recording each element's effect
func inspectRay(sceneObj *scene.Scene, ray *core.Ray) []InspectStep {
	var steps []InspectStep
	for i, el := range sceneObj.System.Elements() {
		before := ray.Len()
		result := el.PropagateRay(ray)

		elementType, properties := extractElementInfo(el)
		step := InspectStep{
			Element:     i,
			ElementType: elementType,
			Status:      result.Status.String(),
			Recorded:    ray.Len() > before,
			Properties:  properties,
		}
		if step.Recorded {
			p, k := ray.Position(), ray.Direction()
			step.Point = &[3]float64{p.X, p.Y, p.Z}
			step.Direction = &[3]float64{k.X, k.Y, k.Z}
		}
		steps = append(steps, step)

		if result.Status != optics.Advanced {
			break
		}
	}
	return steps
}

// handleInspect traces a single ray starting at (x, y) in the beam plane of
// a scene and reports each element's effect on it
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "single-surface"
	}

	x, err := parseFloatParam(query, "x", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseFloatParam(query, "y", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(&TraceRequest{Scene: sceneName})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	direction := core.NewVec3(0, 0, 1)
	if len(sceneObj.Beam.Direction) > 0 {
		if direction, err = core.Normalize(sceneObj.Beam.Direction); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("beam direction: %v", err))
			return
		}
	}
	ray, err := core.NewRay(core.NewVec3(x, y, sceneObj.Beam.Z), direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := ray.Position()
	response := InspectResponse{
		Scene:     sceneObj.Name,
		Start:     [3]float64{start.X, start.Y, start.Z},
		Direction: [3]float64{direction.X, direction.Y, direction.Z},
		Steps:     inspectRay(sceneObj, ray),
	}
	response.Terminated = ray.IsTerminated()
	for _, v := range ray.Vertices() {
		response.Vertices = append(response.Vertices, [3]float64{v.X, v.Y, v.Z})
	}

	writeJSON(w, http.StatusOK, response)
}
