package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"govledger/internal/budget"
)

func momentsCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "moments",
		Short: "Print the moment sequences of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(a.catalog.File()); err != nil {
					return err
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			printSequence(tw, "expense", a.catalog.Expense())
			fmt.Fprintln(tw)
			printSequence(tw, "revenue", a.catalog.Revenue())
			fmt.Fprintf(tw, "\nregistration deadline:\t%d days\n", a.catalog.RegistrationDeadlineDays())
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the effective catalog as YAML")
	return cmd
}

func printSequence(tw *tabwriter.Writer, name string, seq budget.Sequence) {
	fmt.Fprintf(tw, "%s\n", strings.ToUpper(name))
	fmt.Fprintln(tw, "#\tKEY\tLABEL\tALIASES")
	for i, def := range seq {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, def.Key, seq.Label(def.Key), strings.Join(def.Aliases, ", "))
	}
}
