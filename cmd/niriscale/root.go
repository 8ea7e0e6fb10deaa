package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"niriscale/internal/scaler"
)

func newRootCommand() *cobra.Command {
	var socketFlag string
	var configFlag string
	var logLevelFlag string
	var jsonFlag bool

	var scaleFlags []float64
	var directionFlag string
	var outputFlag string
	var dryRunFlag bool

	ctx := newCommandContext(&socketFlag, &configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "niriscale",
		Short: "Cycle a niri output's scale through a candidate list",
		Long: `niriscale steps a display output's scale factor through an ordered list
of candidate scales, one step per invocation. Bind it to a key in niri to
cycle the focused output's scale with repeated presses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			scales := scaleFlags
			if len(scales) == 0 && cfg != nil {
				scales = cfg.Scales.Values
			}

			directionValue := directionFlag
			if !cmd.Flags().Changed("direction") && cfg != nil {
				directionValue = cfg.Scales.Direction
			}
			direction, err := scaler.ParseDirection(directionValue)
			if err != nil {
				return err
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}

			transitions, err := runCycle(client, ctx.loggerValue(), cycleOptions{
				scales:    scales,
				direction: direction,
				target:    outputFlag,
				dryRun:    dryRunFlag,
			})
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, transitions)
			}
			stdout := cmd.OutOrStdout()
			for _, tr := range transitions {
				if tr.Applied {
					fmt.Fprintf(stdout, "Scaling %s to %g (was %g)\n", tr.Output, tr.To, tr.From)
				} else {
					fmt.Fprintf(stdout, "Would scale %s to %g (was %g)\n", tr.Output, tr.To, tr.From)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Path to the niri IPC socket (defaults to $NIRI_SOCKET)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON instead of text")

	rootCmd.Flags().Float64SliceVarP(&scaleFlags, "scale", "s", nil, "Candidate scale; repeat to build the cycle order")
	rootCmd.Flags().StringVar(&directionFlag, "direction", "forwards", "Traversal order: forwards or backwards")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", targetCurrent, "Target output name, @current, or @all")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compute the transition without applying it")

	rootCmd.AddCommand(newOutputsCommand(ctx, &jsonFlag))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
