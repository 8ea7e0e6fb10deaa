// Package niri is a client for the niri compositor's IPC socket.
//
// It owns the wire DTOs, the line-oriented JSON request/response exchange,
// and the Snapshot helper that resolves the focused output from a combined
// outputs/workspaces query. The tool is strictly a client; the compositor
// defines the protocol and this package only mirrors the shapes it needs.
//
// Route all compositor traffic through Client so timeouts, error mapping,
// and debug logging stay consistent across commands.
package niri
