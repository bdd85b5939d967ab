package cmds

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <collection>",
	Short: "Show the fields of a collection in form order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, ok := registry.Schema(args[0])
		if !ok {
			return ExitErrorWrap(ExitUsage, fmt.Errorf("unknown collection %q", args[0]))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tKIND\tLABEL")
		for _, field := range s.Fields {
			fmt.Fprintf(w, "%s\t%s\t%s\n", field.Name, field.Kind, field.DisplayLabel())
		}
		return w.Flush()
	},
}
