// Package main hosts the niriscale CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC
// calls against the niri compositor: the root command performs one scale
// cycle step (the key-binding entry point), while subcommands list outputs
// and scaffold configuration. It centralizes configuration resolution,
// socket discovery, and structured logging setup so commands can focus on
// user experience instead of wiring.
//
// Keep this package lean: the cycle computation lives in internal/scaler
// and all compositor traffic goes through internal/niri.
package main
