package main

import (
	"context"
	"log"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-optical-raytracer/pkg/scene"
	"github.com/df07/go-optical-raytracer/web/server"
)

var version = "dev"

func main() {
	var port int
	var scenesDir string

	cmd := &cobra.Command{
		Use:   "optrace-web",
		Short: "HTTP API for the optical ray tracer",
		Long: `optrace-web serves a JSON API for tracing optical systems:

  GET  /api/health                 liveness check
  GET  /api/scenes                 built-in scenes and JSON systems on disk
  GET  /api/trace?scene=ID         trace a scene (format=json|csv, rays=true, workers=N)
  POST /api/trace                  trace the JSON system in the request body
  GET  /api/inspect?scene=ID&x=&y= follow a single ray element by element`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenesDir == "" {
				scenesDir = scene.ScenesDir()
			}
			webServer := server.NewServer(port, scenesDir)

			log.Printf("Optical Raytracer Web Server")
			log.Printf("Try http://localhost:%d/api/trace?scene=single-surface", port)
			return webServer.Start()
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to serve on")
	cmd.Flags().StringVar(&scenesDir, "scenes", "", "directory of JSON systems (default ./scenes or ../scenes)")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}
