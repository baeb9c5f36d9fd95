package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandOpen        CommandType = "OPEN"
	CommandClose       CommandType = "CLOSE"
	CommandFocus       CommandType = "FOCUS"
	CommandMinimize    CommandType = "MINIMIZE"
	CommandMaximize    CommandType = "MAXIMIZE"
	CommandRestore     CommandType = "RESTORE"
	CommandMove        CommandType = "MOVE"
	CommandResize      CommandType = "RESIZE"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandGetStatus   CommandType = "GET_STATUS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OpenPayload represents the payload for the OPEN command. An empty ID
// opens (or refocuses) the app's single default instance; NewInstance forces
// a fresh window with a generated id instead.
type OpenPayload struct {
	App         string `json:"app"`
	ID          string `json:"id,omitempty"`
	NewInstance bool   `json:"new_instance,omitempty"`
}

// WindowPayload addresses one window by id. Used by CLOSE, FOCUS, MINIMIZE,
// MAXIMIZE and RESTORE.
type WindowPayload struct {
	ID string `json:"id"`
}

// MovePayload represents the payload for the MOVE command
type MovePayload struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// ResizePayload represents the payload for the RESIZE command
type ResizePayload struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowData describes one window in LIST_WINDOWS output, ordered back to
// front.
type WindowData struct {
	ID         string `json:"id"`
	App        string `json:"app"`
	Title      string `json:"title"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	State      string `json:"state"`
	StackOrder uint64 `json:"stack_order"`
	Focused    bool   `json:"focused"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowData `json:"windows"`
	Focused string       `json:"focused,omitempty"`
}

// OpenData represents the data returned by OPEN
type OpenData struct {
	ID string `json:"id"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount    int    `json:"window_count"`
	Focused        string `json:"focused,omitempty"`
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	HostRunning    bool   `json:"host_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
