package niri

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"niriscale/internal/logging"
)

// SocketEnv is the environment variable the compositor sets to advertise
// its IPC socket.
const SocketEnv = "NIRI_SOCKET"

const (
	defaultDialTimeout    = 2 * time.Second
	defaultRequestTimeout = 5 * time.Second
)

// ErrNoSocket is returned when no socket path is configured and the
// compositor did not export one.
var ErrNoSocket = errors.New("niri socket not found; is niri running? (" + SocketEnv + " is unset)")

// DefaultSocketPath resolves the compositor socket from the environment.
func DefaultSocketPath() (string, error) {
	if path := os.Getenv(SocketEnv); path != "" {
		return path, nil
	}
	return "", ErrNoSocket
}

// Options configures client timeouts and logging.
type Options struct {
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Client issues request/response calls against the compositor IPC socket.
// The protocol is one JSON request per line answered by one JSON reply per
// line; each call uses a fresh connection, mirroring how the compositor's
// own CLI talks to it.
type Client struct {
	path           string
	dialTimeout    time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New builds a client for the socket at path.
func New(path string, opts Options) *Client {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Client{
		path:           path,
		dialTimeout:    opts.DialTimeout,
		requestTimeout: opts.RequestTimeout,
		logger:         opts.Logger,
	}
}

// Path returns the socket path the client dials.
func (c *Client) Path() string {
	return c.path
}

// reply is the compositor's response envelope: exactly one of Ok or Err.
type reply struct {
	Ok  json.RawMessage `json:"Ok"`
	Err *string         `json:"Err"`
}

func (c *Client) roundTrip(request any, out any) error {
	conn, err := net.DialTimeout("unix", c.path, c.dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.requestTimeout)); err != nil {
		return fmt.Errorf("set request deadline: %w", err)
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	c.logger.Debug("niri request", logging.String("payload", string(payload)))
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return fmt.Errorf("read reply: %w", err)
	}

	var envelope reply
	if err := json.Unmarshal(line, &envelope); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if envelope.Err != nil {
		return fmt.Errorf("niri refused the request: %s", *envelope.Err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Ok, out); err != nil {
			return fmt.Errorf("decode reply payload: %w", err)
		}
	}
	return nil
}

// Outputs queries the compositor for all connected outputs keyed by
// connector name.
func (c *Client) Outputs() (map[string]Output, error) {
	var out struct {
		Outputs map[string]Output `json:"Outputs"`
	}
	if err := c.roundTrip("Outputs", &out); err != nil {
		return nil, err
	}
	return out.Outputs, nil
}

// Workspaces queries the compositor for all workspaces.
func (c *Client) Workspaces() ([]Workspace, error) {
	var out struct {
		Workspaces []Workspace `json:"Workspaces"`
	}
	if err := c.roundTrip("Workspaces", &out); err != nil {
		return nil, err
	}
	return out.Workspaces, nil
}

type setScaleAction struct {
	Scale float64 `json:"scale"`
}

type outputActionBody struct {
	SetScale setScaleAction `json:"SetScale"`
}

type outputAction struct {
	Output string           `json:"output"`
	Action outputActionBody `json:"action"`
}

type actionRequest struct {
	Action struct {
		Output outputAction `json:"Output"`
	} `json:"Action"`
}

// SetScale commands the compositor to apply scale to the named output.
func (c *Client) SetScale(output string, scale float64) error {
	var req actionRequest
	req.Action.Output = outputAction{
		Output: output,
		Action: outputActionBody{SetScale: setScaleAction{Scale: scale}},
	}
	if err := c.roundTrip(req, nil); err != nil {
		return fmt.Errorf("set scale %v on %s: %w", scale, output, err)
	}
	c.logger.Debug("scale applied",
		logging.String("output", output),
		logging.Float64("scale", scale))
	return nil
}
