// greet init — scaffold a new greet.yaml in the target directory.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/greet/internal/core/config"
	"github.com/f9-o/greet/pkg/errs"
	"github.com/f9-o/greet/pkg/pprint"
)

func NewInitCmd() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new greet.yaml in the current (or specified) directory",
		Example: `  greet init
  greet init --path ./my-project`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			outFile := filepath.Join(targetPath, config.ProjectFile)
			if _, err := os.Stat(outFile); err == nil {
				return errs.Newf(errs.ErrConfigExists, "init", "%s already exists", config.ProjectFile).
					WithResource(outFile).
					WithAdvice("delete it first to reinitialise")
			}

			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("create dir %q: %w", targetPath, err)
			}
			if err := os.WriteFile(outFile, []byte(config.DefaultConfigTemplate), 0644); err != nil {
				return fmt.Errorf("write %s: %w", config.ProjectFile, err)
			}

			p := pprint.To(cmd.OutOrStdout())
			p.Success("Created %s", outFile)
			p.Info("Edit greeter.name, then run: greet")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", ".", "Target directory for greet.yaml")
	return cmd
}
