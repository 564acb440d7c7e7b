package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"svgmap/internal/batch"
	"svgmap/internal/config"
	"svgmap/internal/geom"
	"svgmap/internal/mapel"
	"svgmap/internal/render"
	"svgmap/internal/tui"
)

// version is overridden at link time.
var version = "dev"

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// app carries the state shared by the commands of one invocation.
type app struct {
	cfg  *viper.Viper
	opts config.Options
	log  *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.New()}

	root := &cobra.Command{
		Use:   "svgmap",
		Short: "Render GeoJSON city maps as styled SVG.",
		Long: `svgmap converts GeoJSON documents whose features are tagged with a map
category (buildings, roads, water...) into SVG files styled per category.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadConfigFile(a.cfg); err != nil {
				return err
			}
			opts, err := config.Load(a.cfg)
			if err != nil {
				return err
			}
			a.opts = opts
			a.log = opts.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}
	if err := config.Bind(a.cfg, root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.convertCmd(),
		a.bboxCmd(),
		a.browseCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number.",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "svgmap %s\n", version)
			},
		},
	)
	return root
}

func (a *app) renderer() (*render.Renderer, error) {
	if a.opts.Template == "" {
		return render.NewRenderer(), nil
	}
	return render.NewRendererFromFile(a.opts.Template)
}

func (a *app) converter(log logrus.FieldLogger) (*batch.Converter, error) {
	r, err := a.renderer()
	if err != nil {
		return nil, err
	}
	opts := batch.Options{
		OutDir:   a.opts.OutDir,
		PNG:      a.opts.PNG,
		PNGWidth: a.opts.PNGWidth,
		Workers:  a.opts.Workers,
	}
	return batch.New(r, opts, log), nil
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <dir|file>...",
		Short: "Convert GeoJSON documents to SVG.",
		Long: `convert writes an SVG next to every input document, or into --out.
Directory arguments are scanned for *.json files (not recursively).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := batch.Expand(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no documents found in %s", strings.Join(args, ", "))
			}
			conv, err := a.converter(a.log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			results, errs := conv.Run(ctx, paths)
			printSummary(cmd.OutOrStdout(), results, errs, len(paths))
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d documents failed", len(errs), len(paths))
			}
			return nil
		},
	}
}

func printSummary(w io.Writer, results []batch.Result, errs []error, total int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("converted %d of %d documents", len(results), total)))
	for _, r := range results {
		line := fmt.Sprintf("  ✓ %s → %s", r.Input, r.SVG)
		if r.PNG != "" {
			line += ", " + filepath.Base(r.PNG)
		}
		fmt.Fprintln(w, okStyle.Render(line)+dimStyle.Render(fmt.Sprintf("  %d elements, %d skipped", r.Elements, r.Skipped)))
	}
	for _, err := range errs {
		fmt.Fprintln(w, errStyle.Render("  ✗ "+err.Error()))
	}
}

func (a *app) bboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bbox <file>",
		Short: "Print the district bounding box and element counts of a document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mapel.LoadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			bb := m.BBox()
			fmt.Fprintf(w, "bbox: %s %s %s %s\n",
				geom.FormatNumber(bb.MinX), geom.FormatNumber(bb.MinY),
				geom.FormatNumber(bb.MaxX), geom.FormatNumber(bb.MaxY))
			counts := m.Counts()
			for _, c := range mapel.Categories() {
				if n := counts[c]; n > 0 {
					fmt.Fprintf(w, "%-9s %d\n", c.String(), n)
				}
			}
			if m.Skipped > 0 {
				fmt.Fprintf(w, "%-9s %d\n", "skipped", m.Skipped)
			}
			return nil
		},
	}
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Preview documents in the terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the previewer owns the terminal, so conversions it triggers stay silent
			conv, err := a.converter(nil)
			if err != nil {
				return err
			}
			var m tea.Model
			if len(args) > 0 {
				m = tui.NewWithPath(conv, args[0])
			} else {
				m = tui.New(conv)
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
}
