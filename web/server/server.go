package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-optical-raytracer/pkg/analysis"
	"github.com/df07/go-optical-raytracer/pkg/export"
	"github.com/df07/go-optical-raytracer/pkg/scene"
	"github.com/df07/go-optical-raytracer/pkg/tracer"
)

// DefaultMaxRays caps the beam size a single request may trace
const DefaultMaxRays = 100000

// maxConfigBytes caps the size of a posted system config
const maxConfigBytes = 1 << 20

// Server handles web requests for the optical ray tracer
type Server struct {
	port      int
	scenesDir string
	maxRays   int
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir, maxRays: DefaultMaxRays}
}

// TraceRequest represents a trace request from the client
type TraceRequest struct {
	Scene      string        // Scene reference (built-in ID or file:<name>)
	Config     *scene.Config // Inline system, from a POST body
	Format     export.Format // Ray encoding: json or csv
	NumWorkers int           // 0 = CPU count
	Rays       bool          // Include ray paths in a JSON response
}

// Stats represents trace statistics
type Stats struct {
	TotalRays               int     `json:"totalRays"`
	Advanced                int     `json:"advanced"`
	NoIntercept             int     `json:"noIntercept"`
	TotalInternalReflection int     `json:"totalInternalReflection"`
	SurvivalRate            float64 `json:"survivalRate"`
}

// SpotSummary represents the spot on the output plane
type SpotSummary struct {
	DetectorZ              float64    `json:"detectorZ"`
	Centroid               [2]float64 `json:"centroid"`
	RMSRadius              float64    `json:"rmsRadius"`
	RMSRadiusAboutCentroid float64    `json:"rmsRadiusAboutCentroid"`
	MaxRadius              float64    `json:"maxRadius"`
}

// TraceResponse is the JSON body returned by /api/trace
type TraceResponse struct {
	Scene     string           `json:"scene"`
	System    string           `json:"system"`
	Stats     Stats            `json:"stats"`
	Spot      *SpotSummary     `json:"spot,omitempty"` // nil when no ray survived
	Rays      []export.RayPath `json:"rays,omitempty"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Handler returns the HTTP routes served by s
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/trace", s.handleTrace)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the JSON systems on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir, newServerLogger())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleTrace traces a scene and returns statistics, the spot and optionally
// every ray path. GET traces a named scene; POST traces the system in the body.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseTraceRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if size := sceneObj.Beam.Size(); size > s.maxRays {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("beam has %d rays, limit is %d", size, s.maxRays))
		return
	}

	consoleChan := make(chan ConsoleMessage, 100)
	webLogger := NewWebLogger(sceneObj.Name, consoleChan)

	startTime := time.Now()
	rays, err := sceneObj.Beam.Rays()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	webLogger.Printf("Scene %s: %s\n", sceneObj.Name, sceneObj.System)

	bt := tracer.NewBatchTracer(sceneObj.System, tracer.BatchConfig{NumWorkers: req.NumWorkers}, webLogger)
	_, stats, err := bt.TraceAll(r.Context(), rays)
	if err != nil {
		// client went away
		log.Printf("Trace aborted: %v", err)
		return
	}

	if req.Format == export.FormatCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)
		if err := export.WriteCSV(w, rays); err != nil {
			log.Printf("Error writing CSV: %v", err)
		}
		return
	}

	response := TraceResponse{
		Scene:  sceneObj.Name,
		System: sceneObj.System.String(),
		Stats: Stats{
			TotalRays:               stats.TotalRays,
			Advanced:                stats.Advanced,
			NoIntercept:             stats.NoIntercept,
			TotalInternalReflection: stats.TotalInternalReflection,
			SurvivalRate:            stats.SurvivalRate(),
		},
		Spot:      summarizeSpot(sceneObj, analysis.SpotOf(rays)),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	if req.Rays {
		response.Rays = export.Paths(rays)
	}
	close(consoleChan)
	response.Console = drainConsole(consoleChan)

	writeJSON(w, http.StatusOK, response)
}

// summarizeSpot returns nil when no ray reached the detector
func summarizeSpot(s *scene.Scene, spot analysis.Spot) *SpotSummary {
	centroid, err := spot.Centroid()
	if err != nil {
		return nil
	}
	summary := &SpotSummary{Centroid: [2]float64{centroid.X, centroid.Y}}
	summary.RMSRadius, _ = spot.RMSRadius()
	summary.RMSRadiusAboutCentroid, _ = spot.RMSRadiusAboutCentroid()
	summary.MaxRadius, _ = spot.MaxRadius()
	if detector, ok := s.Detector(); ok {
		summary.DetectorZ = detector.Z0()
	}
	return summary
}

// parseTraceRequest parses request parameters
func (s *Server) parseTraceRequest(r *http.Request) (*TraceRequest, error) {
	query := r.URL.Query()
	req := &TraceRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "single-surface" // Default scene
	}

	format := query.Get("format")
	if format == "" {
		format = string(export.FormatJSON)
	}
	var err error
	if req.Format, err = export.ParseFormat(format); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Rays, err = parseBoolParam(query, "rays", false); err != nil {
		return nil, err
	}

	if r.Method == http.MethodPost {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxConfigBytes))
		if err != nil {
			return nil, err
		}
		if req.Config, err = scene.ParseConfig(data); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// createScene builds the posted system or resolves a named scene. Arbitrary
// file paths are not accepted from clients.
func (s *Server) createScene(req *TraceRequest) (*scene.Scene, error) {
	if req.Config != nil {
		return req.Config.Build()
	}
	if sceneObj, ok := scene.Builtin(req.Scene); ok {
		return sceneObj, nil
	}
	for _, info := range s.fileScenes() {
		if info.ID == req.Scene {
			return scene.Load(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", req.Scene)
}

func (s *Server) fileScenes() []scene.SceneInfo {
	infos, err := scene.ListFileScenes(s.scenesDir, newServerLogger())
	if err != nil {
		return nil
	}
	return infos
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query
func parseFloatParam(values url.Values, key string, defaultValue float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
