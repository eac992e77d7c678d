package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/export"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pdfsource"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root := &cobra.Command{
		Use:           "pdsctl",
		Short:         "Extract, resolve and export product data sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(logger), newResolveCmd(), newExportCmd(logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newExtractCmd(logger *slog.Logger) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract a structured record from a PDF and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex := extract.NewExtractor(pdfsource.New(logger), logger)
			rec := ex.Extract(cmd.Context(), args[0])

			b, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, append(b, '\n'), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write JSON to a file instead of stdout")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve a product name against the file index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := index.NewFileStore(indexPath)
			documentID, err := index.Resolve(cmd.Context(), args[0], store)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), documentID)
			return nil
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "index.json", "path to the index file")
	return cmd
}

func newExportCmd(logger *slog.Logger) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export <pdf>",
		Short: "Extract a PDF and write its record as an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex := extract.NewExtractor(pdfsource.New(logger), logger)
			rec := ex.Extract(cmd.Context(), args[0])

			data, err := export.NewService(logger).RecordXLSX(rec)
			if err != nil {
				return err
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "record.xlsx", "output workbook path")
	return cmd
}
