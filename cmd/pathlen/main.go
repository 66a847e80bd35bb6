// Command pathlen measures the arc length of vector paths described by
// measurement documents or raw SVG path data.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/measurekit/pathlen"
	"github.com/measurekit/pathlen/internal/document"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pathlen:", err)
		os.Exit(1)
	}
}

type options struct {
	divisions int
	digits    int
	unit      string
	minPoints int
	jsonOut   bool
	verbose   bool
}

func (o *options) config() (pathlen.Config, error) {
	unit, err := pathlen.ParseUnit(o.unit)
	if err != nil {
		return pathlen.Config{}, err
	}
	return pathlen.Config{
		Divisions: o.divisions,
		Digits:    o.digits,
		Unit:      unit,
		MinPoints: o.minPoints,
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pathlen",
		Short:         "Measure the arc length of vector paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&opts.divisions, "divisions", pathlen.DefaultDivisions,
		"Simpson subdivision count per segment (positive and even)")
	pf.IntVar(&opts.digits, "digits", 2, "decimals in displayed lengths")
	pf.StringVar(&opts.unit, "unit", "pt", "display unit (pt, mm, cm, in, px)")
	pf.IntVar(&opts.minPoints, "min-points", pathlen.DefaultMinPoints,
		"exclude paths with this many points or fewer")
	pf.BoolVar(&opts.jsonOut, "json", false, "print a JSON report")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newMeasureCmd(opts), newSVGCmd(opts), newVersionCmd())
	return root
}

func newMeasureCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "measure FILE...",
		Short: "Measure paths from YAML or JSON measurement documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			var items []pathlen.Item
			for _, path := range args {
				decoded, err := document.DecodeFile(path)
				if err != nil {
					return err
				}
				slog.Debug("decoded document", "file", path, "items", len(decoded))
				items = append(items, decoded...)
			}
			return writeReport(cmd.OutOrStdout(), items, cfg, opts.jsonOut)
		},
	}
}

func newSVGCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "svg [DATA...]",
		Short: "Measure raw SVG path data, from arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				args = []string{string(data)}
			}
			var items []pathlen.Item
			for _, data := range args {
				if strings.TrimSpace(data) == "" {
					continue
				}
				paths, err := pathlen.ParsePathData(data)
				if err != nil {
					return err
				}
				for _, p := range paths {
					items = append(items, pathlen.PathOf("", p))
				}
			}
			slog.Debug("parsed path data", "paths", len(items))
			return writeReport(cmd.OutOrStdout(), items, cfg, opts.jsonOut)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pathlen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pathlen", version)
		},
	}
}

type jsonMeasurement struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Length float64 `json:"length"`
}

type jsonReport struct {
	Unit   string            `json:"unit"`
	Paths  []jsonMeasurement `json:"paths"`
	Total  float64           `json:"total"`
	Points float64           `json:"total_points"`
}

func writeReport(w io.Writer, items []pathlen.Item, cfg pathlen.Config, asJSON bool) error {
	rep, err := pathlen.Measure(items, cfg)
	if err != nil {
		return err
	}

	if asJSON {
		out := jsonReport{
			Unit:   cfg.Unit.String(),
			Paths:  make([]jsonMeasurement, 0, len(rep.Paths)),
			Total:  cfg.Unit.FromPoints(rep.Total),
			Points: rep.Total,
		}
		for i, m := range rep.Paths {
			out.Paths = append(out.Paths, jsonMeasurement{
				Name:   displayName(m.Name, i),
				Points: m.Length,
				Length: cfg.Unit.FromPoints(m.Length),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, m := range rep.Paths {
		fmt.Fprintf(w, "%s\t%s\n", displayName(m.Name, i), m.Format(cfg))
	}
	fmt.Fprintf(w, "total\t%s\n", pathlen.Measurement{Length: rep.Total}.Format(cfg))
	return nil
}

func displayName(name string, i int) string {
	if name == "" {
		return fmt.Sprintf("path %d", i+1)
	}
	return name
}
