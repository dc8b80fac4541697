// Package export writes ray vertex histories for external plotting tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// Format selects an output encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", name)
	}
}

// Write encodes rays in the given format
func Write(w io.Writer, format Format, rays []*core.Ray) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rays)
	case FormatJSON:
		return WriteJSON(w, rays)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

var csvHeader = []string{"ray", "vertex", "x", "y", "z", "terminated"}

// WriteCSV writes one row per vertex
func WriteCSV(w io.Writer, rays []*core.Ray) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i, ray := range rays {
		terminated := strconv.FormatBool(ray.IsTerminated())
		for j, v := range ray.Vertices() {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				formatFloat(v.X),
				formatFloat(v.Y),
				formatFloat(v.Z),
				terminated,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// RayPath is the JSON form of one ray
type RayPath struct {
	Vertices   [][3]float64 `json:"vertices"`
	Terminated bool         `json:"terminated"`
}

// Paths converts rays to their JSON form
func Paths(rays []*core.Ray) []RayPath {
	paths := make([]RayPath, len(rays))
	for i, ray := range rays {
		vertices := ray.Vertices()
		paths[i].Vertices = make([][3]float64, len(vertices))
		for j, v := range vertices {
			paths[i].Vertices[j] = [3]float64{v.X, v.Y, v.Z}
		}
		paths[i].Terminated = ray.IsTerminated()
	}
	return paths
}

// WriteJSON writes the rays as a JSON array of paths
func WriteJSON(w io.Writer, rays []*core.Ray) error {
	return json.NewEncoder(w).Encode(Paths(rays))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
