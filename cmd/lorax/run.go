package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phanxgames/lorax"
	"github.com/spf13/cobra"
)

const introNote = "Click anywhere to start"

func loadInputs(files fileFlags) (lorax.Config, lorax.Dataset, error) {
	cfg := lorax.DefaultConfig()
	if files.config != "" {
		var err error
		if cfg, err = lorax.LoadConfig(files.config); err != nil {
			return lorax.Config{}, lorax.Dataset{}, err
		}
	}
	ds, err := lorax.LoadTopics(files.data)
	if err != nil {
		return lorax.Config{}, lorax.Dataset{}, err
	}
	return cfg, ds, nil
}

func loadScript(path string) (*lorax.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return lorax.LoadTestScript(data)
}

func newRunCmd() *cobra.Command {
	var (
		files   fileFlags
		debug   bool
		watch   bool
		seed    uint64
		showFPS bool
		script  string
		shots   string
		intro   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window with the topics from --data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := loadInputs(files)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			scene := lorax.NewScene()
			scene.ClearColor = lorax.ColorFromHex(0xFAFAFA)
			scene.SetDebugMode(debug)
			scene.SnapshotDir = shots
			if script != "" {
				runner, err := loadScript(script)
				if err != nil {
					return err
				}
				runner.OnMark = func(label string) { fmt.Fprintf(cmd.OutOrStdout(), "mark %s\n", label) }
				scene.SetTestRunner(runner)
			}

			v := newView(scene, cfg, lorax.WindowViewport{}, cmd.OutOrStdout())
			v.build(ds)
			if intro != "" {
				v.showIntro(intro, introNote)
			}

			var changes <-chan struct{}
			if watch {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if changes, err = watchFile(ctx, files.data); err != nil {
					return fmt.Errorf("watch %s: %w", files.data, err)
				}
			}
			scene.SetUpdateFunc(func() error { return v.update(changes, files.data) })

			w, h := v.windowSize()
			return lorax.Run(scene, lorax.RunConfig{
				Title:     "lorax",
				Width:     w,
				Height:    h,
				Resizable: true,
				ShowFPS:   showFPS,
			})
		},
	}
	files.register(cmd)
	cmd.Flags().BoolVar(&debug, "debug", false, "log topic state changes to stderr")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild when the topics file changes")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "rest offset seed (overrides config)")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show an FPS counter")
	cmd.Flags().StringVar(&script, "script", "", "replay a JSON input script")
	cmd.Flags().StringVar(&shots, "snapshots", "snapshots", "directory for script snapshots")
	cmd.Flags().StringVar(&intro, "intro", "", "cover the window with this message until the first click")
	return cmd
}
