package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"govledger/internal/validation"
)

func checkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a single RFC, CURP or CLABE",
	}
	for _, scheme := range []validation.IdentifierScheme{
		validation.SchemeRFC,
		validation.SchemeCURP,
		validation.SchemeCLABE,
	} {
		cmd.AddCommand(checkSchemeCmd(a, scheme))
	}
	return cmd
}

func checkSchemeCmd(a *app, scheme validation.IdentifierScheme) *cobra.Command {
	name := strings.ToUpper(string(scheme))
	return &cobra.Command{
		Use:   string(scheme) + " <value>",
		Short: "Validate a " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[0]
			report := a.service.Validate(cmd.Context(), validation.IdentifierCheck{
				Scheme: scheme,
				Value:  &value,
			})
			out := cmd.OutOrStdout()
			if report.Valid {
				fmt.Fprintf(out, "%s %s is valid\n", name, strings.TrimSpace(value))
				return nil
			}
			for _, e := range report.Errors {
				fmt.Fprintln(out, e)
			}
			return fmt.Errorf("invalid %s", name)
		},
	}
}
