package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	platformmetrics "govledger/internal/platform/metrics"
	"govledger/pkg/platform/audit"
)

func validateCmd(a *app) *cobra.Command {
	var (
		file       string
		metricsOut string
		auditOut   string
		auditTail  int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file of {kind, payload} operations",
		Long: "Reads a JSON array of {kind, payload} envelopes (or a single envelope),\n" +
			"validates them as one batch and prints the batch report as JSON.\n" +
			"Exits non-zero when any operation is invalid.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if auditTail < 0 {
				return fmt.Errorf("--audit-tail must not be negative, got %d", auditTail)
			}
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			ops, err := a.decoder.DecodeAll(data)
			if err != nil {
				return err
			}

			batch, err := a.service.ValidateBatch(cmd.Context(), ops)
			if err != nil {
				return err
			}
			a.close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(batch); err != nil {
				return err
			}

			if metricsOut != "" {
				if err := platformmetrics.WriteTextfile(metricsOut, a.registry); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			if auditOut != "" {
				if err := writeAuditTrail(cmd, a, auditOut, auditTail); err != nil {
					return fmt.Errorf("write audit trail: %w", err)
				}
			}

			if batch.Invalid > 0 {
				return fmt.Errorf("%d of %d operations are invalid", batch.Invalid, len(batch.Reports))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "operations file, or - for stdin")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write Prometheus metrics to this file")
	cmd.Flags().StringVar(&auditOut, "audit-out", "", "write the audit trail as JSON lines to this file")
	cmd.Flags().IntVar(&auditTail, "audit-tail", 0, "keep only the last N audit events in --audit-out (0 keeps all)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}

func writeAuditTrail(cmd *cobra.Command, a *app, path string, tail int) error {
	var (
		events []audit.Event
		err    error
	)
	if tail > 0 {
		events, err = a.trail.ListRecent(cmd.Context(), tail)
	} else {
		events, err = a.trail.ListAll(cmd.Context())
	}
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}
