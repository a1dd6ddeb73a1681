package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/folio/internal/config"
	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/pdfinfo"
	"github.com/kalambet/folio/internal/storage"
)

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate résumé PDFs",
	Long: `Generate résumé PDFs into the output directory.

With more than one locale the files are built concurrently and each name
carries its locale suffix.

Examples:
  folio export
  folio export --locale en --locale pt-BR --out ./dist
  folio export --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		locales, _ := cmd.Flags().GetStringArray("locale")
		all, _ := cmd.Flags().GetBool("all")
		out, _ := cmd.Flags().GetString("out")

		saved, err := runExport(cmd.Context(), cfg, locales, all, out)
		if err != nil {
			var genErr *export.GenerationError
			if errors.As(err, &genErr) {
				printError("%s", genErr.Message)
			}
			return err
		}
		for _, s := range saved {
			printSuccess("%s  %s  %d page(s), %s", s.Locale, s.Path, s.PDF.PageCount(), humanBytes(int64(s.PDF.Size())))
		}
		return nil
	},
}

func runExport(ctx context.Context, cfg config.Config, locales []string, all bool, out string) ([]export.Saved, error) {
	a, err := newApp(cfg)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	switch {
	case all:
		locales = a.catalog.Locales()
	case len(locales) == 0:
		locales = []string{cfg.Resume.DefaultLocale}
	}
	if out == "" {
		out = cfg.Resume.OutputDir
	}

	printStep("Generating %s", strings.Join(locales, ", "))
	return export.ExportAll(ctx, a.options("cli"), locales, out)
}

func init() {
	exportCmd.Flags().StringArray("locale", nil, "locale to export (repeatable, default: resume.default_locale)")
	exportCmd.Flags().Bool("all", false, "export every available locale")
	exportCmd.Flags().String("out", "", "output directory (default: resume.output_dir)")
}

// --- data ---

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the localized résumé content as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Storage.RecordExports = false
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, _ := cmd.Flags().GetBool("raw")
		var v any
		if raw {
			v, err = a.profiles.GetProfile()
		} else {
			locale, _ := cmd.Flags().GetString("locale")
			if locale == "" {
				locale = cfg.Resume.DefaultLocale
			}
			v, err = export.New(a.options("cli")).Collect(cmd.Context(), locale)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

func init() {
	dataCmd.Flags().String("locale", "", "locale to render (default: resume.default_locale)")
	dataCmd.Flags().Bool("raw", false, "print the source profile instead of the localized document")
}

// --- inspect ---

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show page count and text of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := pdfinfo.ReadFile(args[0])
		if err != nil {
			return err
		}

		printStatus("File", "%s", args[0])
		printStatus("Pages", "%d", info.Pages)
		printStatus("Size", "%s", humanBytes(info.Size))

		if text, _ := cmd.Flags().GetBool("text"); text {
			w := cmd.OutOrStdout()
			for i, page := range info.PageText {
				fmt.Fprintf(w, "%s\n%s\n", colorize(colorBold, fmt.Sprintf("--- page %d ---", i+1)), page)
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("text", false, "print the extracted text of every page")
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		remote, _ := cmd.Flags().GetBool("remote")

		var exports []storage.Export
		if remote {
			if cfg.Server.AdminToken == "" {
				return fmt.Errorf("--remote needs FOLIO_ADMIN_TOKEN")
			}
			resp, err := newAPIClient(cfg).get(cmd.Context(), fmt.Sprintf("/exports?limit=%d&offset=%d", limit, offset))
			if err != nil {
				return err
			}
			if err := decodeJSON(resp, &exports); err != nil {
				return err
			}
		} else {
			store, err := storage.Open(cfg.Storage.DataDir)
			if err != nil {
				return fmt.Errorf("opening storage: %w", err)
			}
			defer store.Close()
			if exports, err = store.ListExports(limit, offset); err != nil {
				return err
			}
		}

		writeHistory(cmd.OutOrStdout(), exports)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete export records older than a duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		n, err := store.DeleteExportsBefore(time.Now().Add(-olderThan))
		if err != nil {
			return err
		}
		printSuccess("Deleted %d export record(s)", n)
		return nil
	},
}

func writeHistory(w io.Writer, exports []storage.Export) {
	if len(exports) == 0 {
		fmt.Fprintln(w, "No exports recorded.")
		return
	}
	for _, e := range exports {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		status := colorize(colorGreen, e.Status)
		if e.Status == storage.StatusFailed {
			status = colorize(colorRed, e.Status)
		}
		fmt.Fprintf(w, "%s  %s  %-6s %-5s %s  %dp  %s\n",
			colorize(colorCyan, id),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Locale,
			e.Channel,
			status,
			e.Pages,
			humanBytes(e.SizeBytes),
		)
	}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of exports to list")
	historyCmd.Flags().Int("offset", 0, "number of exports to skip")
	historyCmd.Flags().Bool("remote", false, "query the running server instead of the local database")
	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "delete records older than this")
	historyCmd.AddCommand(historyPruneCmd)
}

// --- locales ---

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List available résumé locales",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Storage.RecordExports = false
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		w := cmd.OutOrStdout()
		for _, l := range a.catalog.Locales() {
			var tags []string
			if l == cfg.Resume.DefaultLocale {
				tags = append(tags, "default")
			}
			if l == a.catalog.Fallback() {
				tags = append(tags, "fallback")
			}
			if len(tags) > 0 {
				fmt.Fprintf(w, "%s (%s)\n", l, strings.Join(tags, ", "))
			} else {
				fmt.Fprintln(w, l)
			}
		}
		return nil
	},
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show folio configuration and export statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			// Still show partial status even if config fails.
			printError("config error: %v", err)
			return nil
		}

		if newAPIClient(cfg).healthy(cmd.Context()) {
			printStatus("Server", "running on %s", cfg.Addr())
		} else {
			printStatus("Server", "stopped")
		}

		printStatus("Config file", "%s", config.ConfigFilePath())
		printStatus("Default locale", "%s", cfg.Resume.DefaultLocale)
		printStatus("Profile", "%s", orDefault(cfg.Resume.ProfilePath, "bundled sample"))
		printStatus("Locales dir", "%s", orDefault(cfg.Resume.LocalesDir, "bundled"))
		printStatus("Layout", "%s", orDefault(cfg.Resume.LayoutPath, "defaults"))
		printStatus("Data dir", "%s", cfg.Storage.DataDir)

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			printWarning("export log unavailable: %v", err)
			return nil
		}
		defer store.Close()

		total, err := store.CountExports()
		if err != nil {
			return err
		}
		byLocale, err := store.CountExportsByLocale()
		if err != nil {
			return err
		}
		printStatus("Exports", "%d", total)
		locales := make([]string, 0, len(byLocale))
		for l := range byLocale {
			locales = append(locales, l)
		}
		sort.Strings(locales)
		for _, l := range locales {
			printStatus("  "+l, "%d completed", byLocale[l])
		}
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(w, "  %s = %s  %s\n", colorize(colorBold, k.Key), k.Value, colorize(colorCyan, "("+k.EnvVar+")"))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value in the config file.\n\nValid keys:\n  " + strings.Join(config.ValidKeys(), "\n  "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
