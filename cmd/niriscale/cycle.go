package main

import (
	"errors"
	"fmt"

	"log/slog"

	"niriscale/internal/logging"
	"niriscale/internal/niri"
	"niriscale/internal/scaler"
)

// targetCurrent selects the output of the focused workspace; targetAll
// selects every enabled output.
const (
	targetCurrent = "@current"
	targetAll     = "@all"
)

type cycleOptions struct {
	scales    []float64
	direction scaler.Direction
	target    string
	dryRun    bool
}

// scaleTransition is one computed (and possibly applied) scale change.
type scaleTransition struct {
	Output  string  `json:"output"`
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Applied bool    `json:"applied"`
}

// runCycle performs one cycle step: validate, snapshot, compute, apply.
// Validation happens before any compositor traffic so usage errors never
// touch the socket. Exactly one set-scale command goes out per targeted
// output.
func runCycle(client *niri.Client, logger *slog.Logger, opts cycleOptions) ([]scaleTransition, error) {
	if err := scaler.Validate(opts.scales); err != nil {
		if errors.Is(err, scaler.ErrNoScales) {
			return nil, errors.New("no scales configured; pass --scale or set scales.values in the config file")
		}
		return nil, err
	}

	snap, err := niri.TakeSnapshot(client)
	if err != nil {
		return nil, wrapDialError(err, client.Path())
	}

	targets, err := resolveTargets(snap, opts.target)
	if err != nil {
		return nil, err
	}

	transitions := make([]scaleTransition, 0, len(targets))
	for _, out := range targets {
		current := out.Scale()
		next, err := scaler.Next(opts.scales, current, opts.direction)
		if err != nil {
			return transitions, err
		}
		applied := false
		if !opts.dryRun {
			if err := client.SetScale(out.Name, next); err != nil {
				return transitions, err
			}
			applied = true
		}
		logger.Info("scale cycled",
			logging.String("output", out.Name),
			logging.Float64("from", current),
			logging.Float64("to", next),
			logging.Bool("applied", applied))
		transitions = append(transitions, scaleTransition{
			Output:  out.Name,
			From:    current,
			To:      next,
			Applied: applied,
		})
	}
	return transitions, nil
}

// resolveTargets maps the --output value onto concrete outputs. Disabled
// outputs (no logical representation) are never targeted.
func resolveTargets(snap *niri.Snapshot, target string) ([]niri.Output, error) {
	switch target {
	case "", targetCurrent:
		focused := snap.FocusedOutput()
		if focused == nil {
			return nil, errors.New("no focused output")
		}
		if focused.Logical == nil {
			return nil, fmt.Errorf("focused output %s is disabled", focused.Name)
		}
		return []niri.Output{*focused}, nil
	case targetAll:
		targets := make([]niri.Output, 0, len(snap.Outputs))
		for _, name := range snap.Names() {
			out := snap.Outputs[name]
			if out.Logical == nil {
				continue
			}
			targets = append(targets, out)
		}
		if len(targets) == 0 {
			return nil, errors.New("no enabled outputs")
		}
		return targets, nil
	default:
		out, ok := snap.Output(target)
		if !ok {
			return nil, fmt.Errorf("could not find an output named %s", target)
		}
		if out.Logical == nil {
			return nil, fmt.Errorf("output %s is disabled", target)
		}
		return []niri.Output{*out}, nil
	}
}
