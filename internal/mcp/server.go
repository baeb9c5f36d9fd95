// Package mcp exposes the desktop's window manager as MCP tools over stdio.
// The MCP process is a thin proxy: every tool call is forwarded to the
// running desktop host through its IPC socket, so the desktop keeps a single
// source of truth no matter how many MCP clients attach.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openwebdesk/deskwm/internal/ipc"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for desktop window control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server. The desktop host must already be
// running; tool calls fail with a connection error otherwise.
func NewServer() (*Server, error) {
	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("desktop host not reachable: %w", err)
	}

	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a window for a catalog app on the desktop. If a window with the same id is already open this refocuses it instead of creating a duplicate; pass new_instance to force a fresh window. Returns the window id for future reference.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window and remove it from the desktop. Focus transfers to the most recently used remaining window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front of the stack. Minimized windows cannot be focused; restore them first.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window into the taskbar. The window keeps its geometry and can be brought back with restore_window.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Maximize a window to fill the desktop above the taskbar. Maximizing an already maximized window restores it (toggle).",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window to view, or return a maximized window to its previous geometry.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to a new position. The position is clamped so the window stays inside the desktop; maximized and minimized windows cannot be moved.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window. The size is clamped to the app's minimum dimensions and the desktop; non-resizable windows ignore this.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every open window back to front with geometry, state (normal/minimized/maximized) and which window is focused.",
	}, s.handleListWindows)
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, OpenWindowOutput, error) {
	if args.App == "" {
		return nil, OpenWindowOutput{}, fmt.Errorf("app is required")
	}
	id, err := s.client.Open(args.App, args.ID, args.NewInstance)
	if err != nil {
		return nil, OpenWindowOutput{}, err
	}
	return nil, OpenWindowOutput{ID: id}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args, s.client.Close)
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args, s.client.Focus)
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args, s.client.Minimize)
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args, s.client.Maximize)
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args, s.client.Restore)
}

func (s *Server) windowOp(args WindowInput, op func(string) error) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.ID == "" {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	if err := op(args.ID); err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{ID: args.ID}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, GeometryOutput, error) {
	if args.ID == "" {
		return nil, GeometryOutput{}, fmt.Errorf("id is required")
	}
	if err := s.client.Move(args.ID, args.X, args.Y); err != nil {
		return nil, GeometryOutput{}, err
	}
	return s.committedGeometry(args.ID)
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, GeometryOutput, error) {
	if args.ID == "" {
		return nil, GeometryOutput{}, fmt.Errorf("id is required")
	}
	if args.Width <= 0 || args.Height <= 0 {
		return nil, GeometryOutput{}, fmt.Errorf("width and height must be positive")
	}
	if err := s.client.Resize(args.ID, args.Width, args.Height); err != nil {
		return nil, GeometryOutput{}, err
	}
	return s.committedGeometry(args.ID)
}

// committedGeometry reads back the window after a move/resize so the caller
// sees the clamped result, not the requested one.
func (s *Server) committedGeometry(id string) (*mcpsdk.CallToolResult, GeometryOutput, error) {
	windows, err := s.client.ListWindows()
	if err != nil {
		return nil, GeometryOutput{}, err
	}
	for _, w := range windows.Windows {
		if w.ID != id {
			continue
		}
		return nil, GeometryOutput{
			ID:     w.ID,
			X:      w.X,
			Y:      w.Y,
			Width:  w.Width,
			Height: w.Height,
			State:  w.State,
		}, nil
	}
	return nil, GeometryOutput{}, fmt.Errorf("window %q not found", id)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{
		Windows: make([]WindowSummary, 0, len(windows.Windows)),
		Focused: windows.Focused,
	}
	for _, w := range windows.Windows {
		out.Windows = append(out.Windows, WindowSummary{
			ID:         w.ID,
			App:        w.App,
			Title:      w.Title,
			X:          w.X,
			Y:          w.Y,
			Width:      w.Width,
			Height:     w.Height,
			State:      w.State,
			StackOrder: w.StackOrder,
			Focused:    w.Focused,
		})
	}
	return nil, out, nil
}
