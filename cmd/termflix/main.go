package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/paulrobello/termflix/anim"
	"github.com/paulrobello/termflix/canvas"
	"github.com/paulrobello/termflix/config"
	"github.com/paulrobello/termflix/control"
	"github.com/paulrobello/termflix/engine"
	"github.com/paulrobello/termflix/record"
	"github.com/paulrobello/termflix/terminal"
)

var (
	renderFlag  string
	colorFlag   string
	fps         int
	listFlag    bool
	cycle       int
	recordPath  string
	playPath    string
	scale       float64
	unlimited   bool
	clean       bool
	screensaver bool
	initConfig  bool
	showConfig  bool
	controlFile string
	colorQuant  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "termflix [animation]",
		Short: "procedural animations for your terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
		// Errors are printed once, by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.Flags()
	f.StringVarP(&renderFlag, "render", "r", "", "render mode: braille, halfblock, ascii")
	f.StringVar(&colorFlag, "color", "", "color mode: truecolor, 256, 16, mono")
	f.IntVar(&fps, "fps", 30, "target frame rate (1-120)")
	f.BoolVarP(&listFlag, "list", "l", false, "list available animations")
	f.IntVar(&cycle, "cycle", 0, "auto-advance every N seconds (0 = off)")
	f.StringVar(&recordPath, "record", "", "record frames to a file")
	f.StringVar(&playPath, "play", "", "play back a recorded file")
	f.Float64Var(&scale, "scale", 1.0, "density scale (0.5-2.0)")
	f.BoolVar(&unlimited, "unlimited", false, "uncapped frame rate")
	f.BoolVar(&clean, "clean", false, "hide the status bar")
	f.BoolVar(&screensaver, "screensaver", false, "exit on any key or focus gain")
	f.BoolVar(&initConfig, "init-config", false, "write a default config file and exit")
	f.BoolVar(&showConfig, "show-config", false, "print the effective config and exit")
	f.StringVar(&controlFile, "control-file", "", "JSON control channel file to watch")
	f.IntVar(&colorQuant, "color-quant", 0, "RGB quantization step (0 = off)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "termflix: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case listFlag:
		listAnimations()
		return nil
	case initConfig:
		path, err := config.Init()
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	case showConfig:
		return printConfig()
	case playPath != "":
		return playback(playPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	settings, err := mergeSettings(cmd, args, cfg)
	if err != nil {
		return err
	}

	var recorder *record.Recorder
	if recordPath != "" {
		recorder = record.NewRecorder()
		settings.Recorder = recorder
	}

	source, err := control.Open(controlFile)
	if err != nil {
		// Control is best-effort; a failed watch never blocks startup
		fmt.Fprintf(os.Stderr, "termflix: external control disabled: %v\n", err)
		source = control.None()
	}
	defer source.Close()

	session := terminal.NewSession(screensaver)
	if err := session.Init(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			os.Exit(1)
		}
	}()

	loop, err := engine.NewLoop(session, source, settings)
	if err != nil {
		session.Fini()
		return err
	}

	runErr := loop.Run()
	session.Fini()
	if runErr != nil {
		return runErr
	}

	if recorder != nil {
		if err := recorder.Save(recordPath); err != nil {
			return fmt.Errorf("save recording: %w", err)
		}
		fmt.Printf("Recorded %d frames (%.1fs) to %s\n",
			recorder.FrameCount(), recorder.Duration().Seconds(), recordPath)
	}
	return nil
}

// mergeSettings resolves defaults < config file < command line into
// the loop configuration, validating as it goes
func mergeSettings(cmd *cobra.Command, args []string, cfg *config.Config) (engine.Config, error) {
	var s engine.Config
	flags := cmd.Flags()

	animation := "fire"
	if cfg.Animation != nil {
		animation = *cfg.Animation
	}
	if len(args) > 0 {
		animation = args[0]
	}
	if !anim.Exists(animation) {
		fmt.Fprintf(os.Stderr, "Unknown animation: %s\n\n", animation)
		listAnimations()
		os.Exit(1)
	}
	s.Animation = animation

	render := ""
	if cfg.Render != nil {
		render = *cfg.Render
	}
	if flags.Changed("render") {
		render = renderFlag
	}
	if render != "" {
		mode, ok := canvas.ParseRenderMode(render)
		if !ok {
			return s, fmt.Errorf("invalid render mode %q (braille, halfblock, ascii)", render)
		}
		s.RenderOverride = mode
		s.ForceRender = true
	}

	colorName := ""
	if cfg.Color != nil {
		colorName = *cfg.Color
	}
	if flags.Changed("color") {
		colorName = colorFlag
	}
	if colorName != "" {
		mode, ok := canvas.ParseColorMode(colorName)
		if !ok {
			return s, fmt.Errorf("invalid color mode %q (truecolor, 256, 16, mono)", colorName)
		}
		s.ColorMode = mode
	} else {
		s.ColorMode = detectedColorMode()
	}

	frameRate := fps
	if cfg.Fps != nil && !flags.Changed("fps") {
		frameRate = *cfg.Fps
	}
	if frameRate < 1 || frameRate > 120 {
		return s, fmt.Errorf("fps must be 1-120, got %d", frameRate)
	}

	s.Unlimited = unlimited
	if cfg.UnlimitedFps != nil && !flags.Changed("unlimited") {
		s.Unlimited = *cfg.UnlimitedFps
	}
	if !s.Unlimited {
		s.FrameDuration = time.Second / time.Duration(frameRate)
	}

	s.Scale = scale
	if cfg.Scale != nil && !flags.Changed("scale") {
		s.Scale = *cfg.Scale
	}
	if s.Scale < 0.5 || s.Scale > 2.0 {
		return s, fmt.Errorf("scale must be 0.5-2.0, got %g", s.Scale)
	}

	s.Clean = clean
	if cfg.Clean != nil && !flags.Changed("clean") {
		s.Clean = *cfg.Clean
	}

	s.CycleSeconds = cycle
	if cfg.Cycle != nil && !flags.Changed("cycle") {
		s.CycleSeconds = *cfg.Cycle
	}

	quant := colorQuant
	if cfg.ColorQuant != nil && !flags.Changed("color-quant") {
		quant = *cfg.ColorQuant
	}
	if quant < 0 || quant > 128 {
		return s, fmt.Errorf("color-quant must be 0-128, got %d", quant)
	}
	s.ColorQuant = uint8(quant)

	s.Screensaver = screensaver
	return s, nil
}

func detectedColorMode() canvas.ColorMode {
	switch terminal.DetectColorCapability() {
	case terminal.CapTrueColor:
		return canvas.ColorTrueColor
	case terminal.CapAnsi256:
		return canvas.ColorAnsi256
	case terminal.CapAnsi16:
		return canvas.ColorAnsi16
	default:
		return canvas.ColorMono
	}
}

func listAnimations() {
	fmt.Println("Available animations:")
	for _, info := range anim.List() {
		fmt.Printf("  %-10s %s\n", info.Name, info.Description)
	}
}

func printConfig() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("# no config at %s, showing defaults\n\n%s", path, config.DefaultConfigString)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n\n%s", path, data)
	return nil
}

func playback(path string) error {
	player, err := record.NewPlayer(path)
	if err != nil {
		return err
	}
	if err := player.Play(); err != nil {
		return err
	}
	fmt.Println(player.Summary())
	return nil
}
