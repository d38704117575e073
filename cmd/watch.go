package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ttab/internal/config"
	"ttab/internal/diag"
	"ttab/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE [files...]",
	Short: "Re-render a timetable whenever its files change",
	Long: `Renders the table once, then watches the input files and re-renders on
every change until interrupted. Takes the same transform flags as render.
Parse errors in an edited file are reported and the previous output stands.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	addTransformFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	tf := transformsFromFlags(cmd)

	render := func() error {
		p, err := newPipeline(cfg, args)
		if err != nil {
			return err
		}
		if err := p.apply(tf); err != nil {
			return err
		}
		spec, err := p.renderSpec(cfg.OutFormat)
		if err != nil {
			return err
		}
		out, err := p.table.Render(spec)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	// First render is fatal on error; later ones only report.
	if err := render(); err != nil {
		return err
	}

	w, err := watch.New(args)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	d := diag.New(cfg.Quiet, !cfg.NoColor)
	d.Infof("watching %d file(s); ctrl-c to stop", len(args))

	for {
		select {
		case <-ctx.Done():
			return nil
		case file, ok := <-w.Changes:
			if !ok {
				return nil
			}
			d.Infof("%s changed", file)
			if err := render(); err != nil {
				d.Errorf("%v", err)
			}
		}
	}
}
