package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"niriscale/internal/niri"
	"niriscale/internal/scaler"
)

// outputRow is the JSON shape of one listed output.
type outputRow struct {
	Name       string  `json:"name"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	Resolution string  `json:"resolution"`
	Scale      float64 `json:"scale"`
	Focused    bool    `json:"focused"`
	// CyclePosition is the 1-based position the output's current scale
	// occupies in the candidate list, or 0 when no list is configured.
	CyclePosition int `json:"cycle_position,omitempty"`
}

func newOutputsCommand(ctx *commandContext, jsonFlag *bool) *cobra.Command {
	var scaleFlags []float64

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "List connected outputs and their current scales",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			scales := scaleFlags
			if len(scales) == 0 && cfg != nil {
				scales = cfg.Scales.Values
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			snap, err := niri.TakeSnapshot(client)
			if err != nil {
				return wrapDialError(err, client.Path())
			}

			rows := buildOutputRows(snap, scales)
			if *jsonFlag {
				return writeJSON(cmd, rows)
			}

			colorize := shouldColorize(cmd.OutOrStdout())

			headers := []string{"OUTPUT", "MAKE", "MODEL", "RESOLUTION", "SCALE", "FOCUSED"}
			cells := make([][]string, 0, len(rows))
			for _, row := range rows {
				focused := ""
				if row.Focused {
					focused = "yes"
					if colorize {
						focused = text.Colors{text.FgGreen}.Sprint(focused)
					}
				}
				scale := "off"
				if row.Scale > 0 {
					scale = strconv.FormatFloat(row.Scale, 'g', -1, 64)
					if row.CyclePosition > 0 {
						scale = fmt.Sprintf("%s (%d/%d)", scale, row.CyclePosition, len(scales))
					}
				}
				cells = append(cells, []string{row.Name, row.Make, row.Model, row.Resolution, scale, focused})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, cells, aligns))
			return nil
		},
	}

	cmd.Flags().Float64SliceVarP(&scaleFlags, "scale", "s", nil, "Candidate scale; repeat to show cycle positions")
	return cmd
}

func buildOutputRows(snap *niri.Snapshot, scales []float64) []outputRow {
	var focusedName string
	if focused := snap.FocusedOutput(); focused != nil {
		focusedName = focused.Name
	}

	rows := make([]outputRow, 0, len(snap.Outputs))
	for _, name := range snap.Names() {
		out := snap.Outputs[name]
		row := outputRow{
			Name:    out.Name,
			Make:    out.Make,
			Model:   out.Model,
			Focused: out.Name == focusedName,
		}
		if out.Logical != nil {
			row.Resolution = fmt.Sprintf("%dx%d", out.Logical.Width, out.Logical.Height)
			row.Scale = out.Logical.Scale
			if len(scales) > 0 {
				row.CyclePosition = scaler.NearestIndex(scales, out.Logical.Scale) + 1
			}
		}
		rows = append(rows, row)
	}
	return rows
}
