package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/openwebdesk/deskwm/internal/runtimepath"
)

// Client handles IPC communication with the desktop host
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop host: %w (is deskwm run active?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("desktop host error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) sendWindowOp(cmd CommandType, id string) error {
	payload, err := json.Marshal(WindowPayload{ID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal window payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: cmd, Payload: payload})
	return err
}

// Open opens (or refocuses) a window for the named app. Returns the window
// id. With newInstance a fresh window is created with a generated id.
func (c *Client) Open(app, id string, newInstance bool) (string, error) {
	payload, err := json.Marshal(OpenPayload{App: app, ID: id, NewInstance: newInstance})
	if err != nil {
		return "", fmt.Errorf("failed to marshal open payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandOpen, Payload: payload})
	if err != nil {
		return "", err
	}

	var data OpenData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse open data: %w", err)
	}
	return data.ID, nil
}

// Close closes the window
func (c *Client) Close(id string) error {
	return c.sendWindowOp(CommandClose, id)
}

// Focus brings the window to the front
func (c *Client) Focus(id string) error {
	return c.sendWindowOp(CommandFocus, id)
}

// Minimize hides the window into the taskbar
func (c *Client) Minimize(id string) error {
	return c.sendWindowOp(CommandMinimize, id)
}

// Maximize grows the window to the full usable viewport
func (c *Client) Maximize(id string) error {
	return c.sendWindowOp(CommandMaximize, id)
}

// Restore returns a minimized or maximized window to its normal geometry
func (c *Client) Restore(id string) error {
	return c.sendWindowOp(CommandRestore, id)
}

// Move repositions the window
func (c *Client) Move(id string, x, y int) error {
	payload, err := json.Marshal(MovePayload{ID: id, X: x, Y: y})
	if err != nil {
		return fmt.Errorf("failed to marshal move payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandMove, Payload: payload})
	return err
}

// Resize sets the window's size
func (c *Client) Resize(id string, width, height int) error {
	payload, err := json.Marshal(ResizePayload{ID: id, Width: width, Height: height})
	if err != nil {
		return fmt.Errorf("failed to marshal resize payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandResize, Payload: payload})
	return err
}

// ListWindows retrieves every open window, back to front
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves desktop host status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// Ping checks if the desktop host is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
