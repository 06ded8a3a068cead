// Command throughput prints composite throughput summaries for an
// observatory described in TOML.
//
// Usage:
//
//	throughput --config observatory.toml [flags]
//
// Without --filter it reports every filter registered with the
// instrument. Remote filter service and log settings are read from the
// ETC_* environment variables.
//
// Examples:
//
//	throughput --config configs/lco_0m4_qhy600.toml
//	throughput --config configs/lco_0m4_qhy600.toml --filter V --filter gp
//	throughput --config configs/lco_0m4_qhy600.toml --at 500 --at 650
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-etc/internal/logging"
	"github.com/cwbudde/algo-etc/optics/config"
	"github.com/cwbudde/algo-etc/optics/curve"
	"github.com/cwbudde/algo-etc/optics/model"
	"github.com/cwbudde/algo-etc/stats/bandpass"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "observatory TOML file")
	filters := pflag.StringArrayP("filter", "f", nil, "filter token to report (repeatable)")
	at := pflag.Float64Slice("at", nil, "also evaluate the total at these wavelengths in nm")
	components := pflag.Bool("components", false, "print each subsystem and exit")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: throughput --config FILE [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints composite site x telescope x instrument throughput per filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *configPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	svc, err := config.ServiceFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(svc.LogLevel, svc.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, svc, *configPath, *filters, *at, *components, os.Stdout); err != nil {
		log.Error(err, "throughput failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logr.Logger, svc config.Service, path string, filters []string, at []float64, components bool, w io.Writer) error {
	obs, err := config.Load(path)
	if err != nil {
		return err
	}
	sys, err := obs.Build(ctx, config.WithService(svc), config.WithLogger(log))
	if err != nil {
		return err
	}

	if components {
		return printComponents(w, sys)
	}

	if len(filters) == 0 {
		filters = sys.Instrument.Filters()
	}
	return printFilters(w, sys, filters, at)
}

func printComponents(w io.Writer, sys *model.System) error {
	if sys.Site != nil {
		if _, err := fmt.Fprintln(w, "Site:      ", sys.Site); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "Telescope: ", sys.Telescope); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Instrument: %s\n\n", sys.Instrument)
	return err
}

func printFilters(w io.Writer, sys *model.System, filters []string, at []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Filter\tFrom [nm]\tTo [nm]\tPeak\tPeak at [nm]\tPivot [nm]\tFWHM [nm]\tEW [nm]"
	rule := "------\t---------\t-------\t----\t------------\t----------\t---------\t-------"
	for _, x := range at {
		header += fmt.Sprintf("\t@%g", x)
		rule += "\t----"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, f := range filters {
		total, err := sys.Throughput(f)
		if err != nil {
			return err
		}
		lo, hi := total.Domain()
		st := bandpass.Calculate(total)
		row := fmt.Sprintf("%s\t%.1f\t%.1f\t%.4f\t%.1f\t%.1f\t%.1f\t%.2f",
			f, lo, hi, st.Peak, st.PeakWavelength, st.PivotWavelength, st.FWHM, st.EquivalentWidth)
		for _, x := range at {
			v, err := total.WithPolicy(curve.PolicyZero).Evaluate(x)
			if err != nil {
				return err
			}
			row += fmt.Sprintf("\t%.4f", v)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
