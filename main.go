package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nmoreau/visynth/internal/preset"
	"github.com/nmoreau/visynth/internal/source"
	"github.com/nmoreau/visynth/internal/synth"
	"github.com/nmoreau/visynth/internal/ui"
)

func main() {
	pattern := flag.Bool("pattern", false, "use the built-in plasma pattern instead of a camera or file")
	camera := flag.Int("camera", -1, "capture from camera device N")
	listCameras := flag.Bool("list-cameras", false, "list attached cameras and exit")
	loop := flag.Bool("loop", true, "loop video files")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: visynth [flags] [video file]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listCameras {
		devices := source.ListCameras()
		if len(devices) == 0 {
			fmt.Println("no cameras found")
			return
		}
		for _, dev := range devices {
			fmt.Printf("%d: %s (%s)\n", dev.Index, dev.Label, dev.Path)
		}
		return
	}

	src, err := pickSource(*pattern, *camera, *loop, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if src == nil {
		return // picker cancelled
	}
	defer src.Close()

	presetPath, err := preset.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := preset.Open(presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	params := synth.DefaultParams()
	engine := synth.New()
	if err := engine.Initialize(params); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer engine.Stop()

	model := ui.New(engine, src, store, params)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pickSource resolves the flags and argument into a frame source, falling
// back to the interactive picker when nothing was requested. A nil source
// with a nil error means the user cancelled the picker.
func pickSource(pattern bool, camera int, loop bool, path string) (source.Source, error) {
	switch {
	case pattern:
		return source.NewPlasma(0), nil
	case camera >= 0:
		if !source.FFmpegAvailable() {
			return nil, fmt.Errorf("camera capture needs ffmpeg in PATH")
		}
		return source.NewCamera(camera)
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		if !source.FFmpegAvailable() {
			return nil, fmt.Errorf("video decoding needs ffmpeg in PATH")
		}
		return source.NewVideo(path, loop)
	}

	picker := ui.NewPicker(source.ListCameras())
	p := tea.NewProgram(picker, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	pm, ok := finalModel.(ui.PickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from picker")
	}
	result := pm.Result()
	switch {
	case result.Cancelled:
		return nil, nil
	case result.Kind == ui.SourcePattern:
		return source.NewPlasma(0), nil
	case result.Kind == ui.SourceCamera:
		return source.NewCamera(result.CameraIndex)
	default:
		return source.NewVideo(result.Path, loop)
	}
}
