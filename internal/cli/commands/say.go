// greet say — greet a name.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f9-o/greet/internal/greeting"
	"github.com/f9-o/greet/pkg/errs"
)

func NewSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say [name]",
		Short: "Greet a name (defaults to greeter.name from config)",
		Example: `  greet say Ada
  greet say ""
  greet say --json Ada`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			name := rt.Config.Greeter.Name
			if len(args) == 1 {
				name = args[0]
			}
			text := greeting.New(name).Greet()

			var err error
			if rt.Flags.JSONOutput {
				err = json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"name":     name,
					"greeting": text,
				})
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			if err != nil {
				return errs.Wrap(err, errs.ErrOutputWrite, "say")
			}
			rt.remember("say", name, text)
			return nil
		},
	}
}
