package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smasonuk/freelook3d"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		offline    bool
		output     string
		movement   string
		overview   bool
	)

	root := &cobra.Command{
		Use:   "freelook [resource-dir]",
		Short: "Walk around a grid of objects with a free-look camera",
		Long: `freelook renders a grid of shaded objects on a textured ground plane.

  w/a/s/d  move          z/Z  zoom in/out
  t        overview      c    toggle face culling
  m        next material mouse drag  look around
  Esc      quit

Meshes (bunny.obj, teapot.obj, square.obj, sphere2.obj, frustum.obj) and the
ground texture (grass2.jpg) are read from resource-dir when given.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := freelook3d.NewLogger(os.Stderr, level)

			cfg := freelook3d.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = freelook3d.LoadConfig(configPath); err != nil {
					return err
				}
				logger.Debug("loaded config", "file", configPath)
			}
			if len(args) == 1 {
				cfg.Scene.ResourceDir = args[0]
			}
			if cmd.Flags().Changed("movement") {
				cfg.Camera.Movement = freelook3d.MovementMode(movement)
			}
			if cmd.Flags().Changed("overview") {
				cfg.Overview.Visible = overview
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			game, err := freelook3d.NewGame(cfg, freelook3d.GameOptions{
				Offline: offline,
				Output:  output,
			}, logger)
			if err != nil {
				return err
			}
			return freelook3d.Run(game)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
	flags.BoolVar(&offline, "offline", false, "render one frame to --output and exit")
	flags.StringVarP(&output, "output", "o", "output.png", "image written in offline mode")
	flags.StringVar(&movement, "movement", string(freelook3d.MovementEvent), "movement mode: event or held")
	flags.BoolVar(&overview, "overview", false, "start with the top-down overview shown")
	return root
}
