package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cvgen/internal/config"
	"github.com/goliatone/go-cvgen/pkg/editor"
	"github.com/goliatone/go-cvgen/pkg/export"
	"github.com/goliatone/go-cvgen/pkg/gallery"
	"github.com/goliatone/go-cvgen/pkg/i18n"
	"github.com/goliatone/go-cvgen/pkg/render"
	"github.com/goliatone/go-cvgen/pkg/schema"
	"github.com/goliatone/go-cvgen/pkg/session"
)

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:          "cvgen",
		Short:        "Fill in a CV, preview it in one of four templates and export it as DOCX",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory holding the stored document")
	flags.StringVar(&a.storage, "storage", config.StorageBadger, "storage backend: badger, file or memory")
	flags.StringVar(&a.locale, "locale", i18n.DefaultLocale, "interface and document locale (id, en)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newEditCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newShowCmd(a),
		newResetCmd(a),
		newTemplatesCmd(a),
	)
	return root
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the CV interactively; every answer is saved as you go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			e, err := s.Editor(editor.WithTheme(editor.Theme{ErrorPrefix: "! "}))
			if err != nil {
				return err
			}
			if err := e.Run(cmd.Context()); err != nil && !errors.Is(err, editor.ErrAborted) {
				return err
			}
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		renderer string
		template string
		color    string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the CV as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("template") && a.cfg.Template != "" {
				template = a.cfg.Template
			}
			if !cmd.Flags().Changed("color") && a.cfg.Color != "" {
				color = a.cfg.Color
			}

			page, err := s.Preview(cmd.Context(), session.PreviewOptions{
				Renderer: renderer,
				RenderOptions: render.RenderOptions{
					Template:   template,
					ThemeColor: color,
					Locale:     a.cfg.Locale,
				},
			})
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = a.out.Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Fprintf(a.out, "Preview written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&renderer, "renderer", "html", "output renderer: html or text")
	cmd.Flags().StringVar(&template, "template", gallery.DefaultTemplate, "template name or alias")
	cmd.Flags().StringVar(&color, "color", "", "palette swatch name or #hex accent color")
	cmd.Flags().StringVar(&output, "out", "", "output file (stdout if empty)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		dir      string
		withHTML bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the CV in the numbered form layout as a .docx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") && a.cfg.ExportDir != "" {
				dir = a.cfg.ExportDir
			}

			fmt.Fprintln(a.out, text(a, "exporting", nil))
			g, ctx := errgroup.WithContext(cmd.Context())
			var docxName, htmlName string
			g.Go(func() error {
				res := <-s.ExportAsync(ctx, export.DirSink(dir))
				docxName = res.Name
				return res.Err
			})
			if withHTML {
				g.Go(func() error {
					page, err := s.Preview(ctx, session.PreviewOptions{
						RenderOptions: render.RenderOptions{Template: a.cfg.Template, ThemeColor: a.cfg.Color},
					})
					if err != nil {
						return err
					}
					htmlName = strings.TrimSuffix(export.FileName(s.Document()), ".docx") + ".html"
					if err := os.WriteFile(filepath.Join(dir, htmlName), page, 0o644); err != nil {
						return fmt.Errorf("write preview: %w", err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Fprintln(a.out, text(a, "exportDone", map[string]any{"path": filepath.Join(dir, docxName)}))
			if htmlName != "" {
				fmt.Fprintf(a.out, "Preview written to %s\n", filepath.Join(dir, htmlName))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "destination directory")
	cmd.Flags().BoolVar(&withHTML, "html", false, "also write the HTML preview next to the document")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|url>",
		Short: "Replace the stored CV with a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := schema.ParseSource(args[0])
			if err != nil {
				return err
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.ImportSource(cmd.Context(), src); err != nil {
				if errors.Is(err, schema.ErrInvalidDocument) {
					for _, line := range schema.MapIssues(err).Lines() {
						fmt.Fprintln(cmd.ErrOrStderr(), "  "+line)
					}
				}
				return err
			}
			fmt.Fprintf(a.out, "Imported %s\n", args[0])
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored CV document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			doc := s.Document()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case "yaml":
				// Round trip through JSON so the YAML keys match the stored
				// field names.
				data, err := json.Marshal(doc)
				if err != nil {
					return err
				}
				var tree any
				if err := yaml.Unmarshal(data, &tree); err != nil {
					return err
				}
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				if err := enc.Encode(tree); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored CV data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := editor.NewSurveyDriver().Confirm(cmd.Context(), editor.ConfirmConfig{
					Message: text(a, "resetConfirm", nil),
				})
				if err != nil {
					if errors.Is(err, editor.ErrAborted) {
						return nil
					}
					return err
				}
				if !ok {
					return nil
				}
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			s.Reset(cmd.Context())
			fmt.Fprintln(a.out, text(a, "menu.resetDone", nil))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the preview templates and their color palettes",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			styles := lipgloss.NewRenderer(a.out)
			title := styles.NewStyle().Bold(true)
			for _, tpl := range gallery.Default().Templates() {
				name := tpl.Name
				if tpl.Name == gallery.DefaultTemplate {
					name += " (default)"
				}
				if len(tpl.Aliases) > 0 {
					name += " [" + strings.Join(tpl.Aliases, ", ") + "]"
				}
				fmt.Fprintf(a.out, "%s\t%s\n", title.Render(name), tpl.Label)
				for _, swatch := range tpl.Palette {
					chip := styles.NewStyle().Background(lipgloss.Color(swatch.Hex)).Render("  ")
					fmt.Fprintf(a.out, "  %s %-12s %s\n", chip, swatch.Name, swatch.Hex)
				}
			}
			return nil
		},
	}
}

func text(a *app, key string, args map[string]any) string {
	if args == nil {
		return i18n.Text(i18n.MustDefault(), a.cfg.Locale, key, nil)
	}
	return i18n.Text(i18n.MustDefault(), a.cfg.Locale, key, nil, args)
}
