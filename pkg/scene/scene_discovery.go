package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON config (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtinGroup  = "Built-in Scenes"
	fileGroup     = "System Files"
	fileScenePref = "file:"
)

// ScenesDir returns the first scenes directory found relative to the working
// directory, or "" if there is none
func ScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes scans dir for JSON system configs. Files that fail to parse
// are reported through logger and skipped.
func ListFileScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	scenes := []SceneInfo{}
	if dir == "" {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			if logger != nil {
				logger.Printf("Warning: failed to parse scene %s: %v\n", filePath, err)
			}
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a JSON system config
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	cfg, err := LoadConfig(filePath)
	if err != nil {
		return SceneInfo{}, err
	}

	info := SceneInfo{
		ID:          fileScenePref + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		Description: cfg.Description,
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}
	if cfg.Name != "" {
		info.Name = cfg.Name
	}
	return info, nil
}

// ListAllScenes returns built-in scenes followed by the configs found in dir
func ListAllScenes(dir string, logger core.Logger) (ScenesResponse, error) {
	var response ScenesResponse

	builtins := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		builtins[i] = b.info
		builtins[i].Group = builtinGroup
		builtins[i].Type = "builtin"
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtins})

	files, err := ListFileScenes(dir, logger)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	if len(files) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: fileGroup, Scenes: files})
	}
	return response, nil
}

// Load resolves a scene reference: a built-in ID, a "file:<name>" ID from
// the scenes directory, or a path to a JSON config
func Load(ref string) (*Scene, error) {
	if s, ok := Builtin(ref); ok {
		return s, nil
	}

	path := ref
	if name, ok := strings.CutPrefix(ref, fileScenePref); ok {
		dir := ScenesDir()
		if dir == "" {
			return nil, fmt.Errorf("unknown scene %q: no scenes directory", ref)
		}
		path = filepath.Join(dir, name+".json")
	} else if filepath.Ext(ref) != ".json" {
		return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", ref, strings.Join(BuiltinNames(), ", "))
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "thick-lens" -> "Thick Lens"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
