// Command lorax opens a window showing topic clusters loaded from a YAML
// file, or validates topic and config files without opening one.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lorax",
		Short:        "Interactive topic clusters",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newValidateCmd())
	return root
}

// fileFlags are shared by run and validate.
type fileFlags struct {
	data   string
	config string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", "topics.yaml", "topics YAML file")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "config YAML file (defaults apply when empty)")
}

func newValidateCmd() *cobra.Command {
	var files fileFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a topics file and optional config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := loadInputs(files)
			if err != nil {
				return err
			}
			issues := 0
			for _, t := range ds.Topics {
				issues += len(t.Issues)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d topics, %d issues, radius %g\n", len(ds.Topics), issues, cfg.Radius)
			return nil
		},
	}
	files.register(cmd)
	return cmd
}
