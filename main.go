package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/galaxy/pkg/app"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	configPath = flag.String("config", config.DefaultSceneConfigPath, "Scene config path (data/... reads the embedded default)")
	photosPath = flag.String("photos", config.DefaultPhotoConfigPath, "Photo list path")
	photosDir  = flag.String("photos-dir", "gallery", "Directory containing the photo files")
	startStep  = flag.Int("step", 0, "Initial chapter step")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "galaxy: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ScenePath:  *configPath,
		PhotosPath: *photosPath,
		PhotosDir:  *photosDir,
		Step:       *startStep,
	})
	if err != nil {
		return err
	}
	defer viewer.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(viewer)
}
