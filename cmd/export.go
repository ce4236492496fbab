package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/render"
	"github.com/tabletools/tablepad/storage"
	"github.com/tabletools/tablepad/table"
)

const formatMarkdown = "markdown"
const formatCSV = "csv"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved table to stdout or a file",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		format, _ := cmd.Flags().GetString("format")
		if format != formatMarkdown && format != formatCSV {
			return fmt.Errorf("unknown format %q, expected %s or %s", format, formatMarkdown, formatCSV)
		}
		return nil
	},
	Run: runExport,
}

func init() {
	exportCmd.Flags().String("format", formatMarkdown, "output format. options: markdown,csv")
	exportCmd.Flags().StringP("output", "o", "", "destination file, stdout when empty")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	settings := loadSettings()

	kv, err := storage.NewSQLiteStore(settings.DataFile)
	if err != nil {
		logger.Fatal("unable to open data file",
			"file", settings.DataFile,
			"error", err)
	}
	defer kv.Close()

	// Same load path as the editor, fallbacks included, so exporting a
	// fresh or damaged data file still produces the effective table.
	adapter := storage.NewAdapter(kv, table.NewStore(config.NewDefaultNaming()), logger)
	columns, rows := adapter.Load(cmd.Context())

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	out := io.Writer(os.Stdout)
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			logger.Fatal("unable to create output file",
				"file", output,
				"error", err)
		}
		defer file.Close()
		out = file
	}

	switch format {
	case formatCSV:
		err = writeCSV(out, columns, rows)
	default:
		_, err = io.WriteString(out, render.Format(render.Table(columns, rows), settings.CodeBlock))
	}
	if err != nil {
		logger.Fatal("unable to write export", "error", err)
	}
}

// writeCSV emits the table with display names as the header row. An
// empty table writes nothing.
func writeCSV(w io.Writer, columns []table.Column, rows []table.Row) error {
	if len(columns) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row.Values[col.ID]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
