package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/GunarsK-portfolio/inventory-service/internal/audit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type HistoryFlags struct {
	Path   string
	Action string
	JSON   bool
}

func NewHistoryFlags() *HistoryFlags {
	path := os.Getenv("AUDIT_LOG_PATH")
	if path == "" {
		path = "historial.csv"
	}
	return &HistoryFlags{Path: path}
}

func (f *HistoryFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path, "audit-log", f.Path, "path of the audit history file")
	fs.StringVar(&f.Action, "action", f.Action, "only show records of this action (e.g. borrar)")
	fs.BoolVar(&f.JSON, "json", f.JSON, "print records as JSON")
}

func init() {
	f := NewHistoryFlags()

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the audit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := audit.NewFileWriter(f.Path, logrus.StandardLogger(), nil)
			records, err := reader.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			records = filterRecords(records, audit.Action(f.Action))
			if f.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}

	f.BindFlags(cmd.Flags())
	rootCmd.AddCommand(cmd)
}

func filterRecords(records []audit.Record, action audit.Action) []audit.Record {
	if action == "" {
		return records
	}
	out := make([]audit.Record, 0, len(records))
	for _, r := range records {
		if r.Action == action {
			out = append(out, r)
		}
	}
	return out
}

func printRecords(w io.Writer, records []audit.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(audit.Header, "\t")))
	for _, r := range records {
		fmt.Fprintln(tw, strings.Join(blankAsDash(r.Row()), "\t"))
	}
	return tw.Flush()
}

func blankAsDash(row []string) []string {
	for i, v := range row {
		if v == "" {
			row[i] = "-"
		}
	}
	return row
}
