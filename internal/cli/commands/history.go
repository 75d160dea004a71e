// greet history — list or clear recorded greetings.
package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/f9-o/greet/api/v1"
	"github.com/f9-o/greet/pkg/errs"
	"github.com/f9-o/greet/pkg/pprint"
)

func NewHistoryCmd() *cobra.Command {
	var limit int
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List greetings recorded in the state store",
		Example: `  greet history
  greet history --limit 5
  greet history --clear`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			if rt.State == nil {
				return errs.Newf(errs.ErrValidation, "history", "state store not opened").
					WithAdvice("drop --no-history to read the greeting history")
			}
			out := cmd.OutOrStdout()

			if clearAll {
				if err := rt.State.Clear(); err != nil {
					return err
				}
				rt.Log.Info("history cleared", "path", rt.State.Path())
				pprint.To(out).Success("History cleared")
				return nil
			}

			recs, err := rt.State.List(limit)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []v1.GreetingRecord{}
			}

			if rt.Flags.JSONOutput {
				return json.NewEncoder(out).Encode(recs)
			}
			if len(recs) == 0 {
				pprint.To(out).Info("No greetings recorded yet")
				return nil
			}

			tbl := pprint.NewTable(out, "SEQ", "WHEN", "NAME", "GREETING")
			for _, r := range recs {
				tbl.AddRow(
					strconv.FormatUint(r.Seq, 10),
					r.Timestamp.Local().Format(time.DateTime),
					fmt.Sprintf("%q", r.Name),
					r.Greeting,
				)
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the newest N records (0 = all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all recorded greetings")
	return cmd
}
