// greet hello — print the fixed hello line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/f9-o/greet/internal/greeting"
	"github.com/f9-o/greet/pkg/errs"
)

func NewHelloCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "hello",
		Short:        "Print the fixed hello line",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			if err := greeting.HelloWorld(cmd.OutOrStdout()); err != nil {
				return errs.Wrap(err, errs.ErrOutputWrite, "hello")
			}
			rt.remember("hello", "", greeting.HelloMessage)
			return nil
		},
	}
}

// RunDefault is the bare `greet` action: the hello line, then a greeting
// for the configured name.
func RunDefault(cmd *cobra.Command, args []string) error {
	rt := FromContext(cmd.Context())
	name := rt.Config.Greeter.Name
	rt.Log.Debug("default run", "name", name, "config", rt.Config.Source)

	if err := greeting.Run(cmd.OutOrStdout(), name); err != nil {
		return errs.Wrap(err, errs.ErrOutputWrite, "run")
	}
	rt.remember("run", name, greeting.New(name).Greet())
	return nil
}
