package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/openwebdesk/deskwm/internal/runtimepath"
	"github.com/openwebdesk/deskwm/internal/wm"
)

// Server handles IPC requests from clients. Every mutating command goes
// through the window manager and then pings the notify callback so the host
// UI can redraw.
type Server struct {
	socketPath   string
	listener     net.Listener
	manager      *wm.Manager
	notify       func()
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. notify may be nil.
func NewServer(manager *wm.Manager, notify func()) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		manager:    manager,
		notify:     notify,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandOpen:
		return s.handleOpen(req.Payload)
	case CommandClose:
		return s.handleWindowOp(req.Payload, s.manager.Close)
	case CommandFocus:
		return s.handleWindowOp(req.Payload, s.manager.Focus)
	case CommandMinimize:
		return s.handleWindowOp(req.Payload, s.manager.Minimize)
	case CommandMaximize:
		return s.handleWindowOp(req.Payload, s.manager.Maximize)
	case CommandRestore:
		return s.handleWindowOp(req.Payload, s.manager.Restore)
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandResize:
		return s.handleResize(req.Payload)
	case CommandListWindows:
		return s.handleListWindows()
	case CommandGetStatus:
		return s.handleGetStatus()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleOpen(payload json.RawMessage) *Response {
	var openReq OpenPayload
	if err := json.Unmarshal(payload, &openReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	if openReq.App == "" {
		return NewErrorResponse("app is required")
	}

	var id string
	var err error
	if openReq.NewInstance && openReq.ID == "" {
		id, err = s.manager.OpenAuto(openReq.App)
	} else {
		id, err = s.manager.Open(openReq.App, openReq.ID)
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to open window: %v", err))
	}
	s.changed()

	resp, _ := NewOKResponse(OpenData{ID: id})
	return resp
}

// handleWindowOp runs a single-id lifecycle command. Invalid targets are
// ignored by the manager, so these always answer OK.
func (s *Server) handleWindowOp(payload json.RawMessage, op func(string)) *Response {
	var winReq WindowPayload
	if err := json.Unmarshal(payload, &winReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if winReq.ID == "" {
		return NewErrorResponse("id is required")
	}

	op(winReq.ID)
	s.changed()

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var moveReq MovePayload
	if err := json.Unmarshal(payload, &moveReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if moveReq.ID == "" {
		return NewErrorResponse("id is required")
	}

	s.manager.Move(moveReq.ID, moveReq.X, moveReq.Y)
	s.changed()

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleResize(payload json.RawMessage) *Response {
	var resizeReq ResizePayload
	if err := json.Unmarshal(payload, &resizeReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if resizeReq.ID == "" {
		return NewErrorResponse("id is required")
	}
	if resizeReq.Width <= 0 || resizeReq.Height <= 0 {
		return NewErrorResponse("width and height must be positive")
	}

	s.manager.Resize(resizeReq.ID, resizeReq.Width, resizeReq.Height)
	s.changed()

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListWindows() *Response {
	snapshot := s.manager.Snapshot()

	data := WindowsData{Windows: make([]WindowData, 0, len(snapshot))}
	for _, w := range snapshot {
		data.Windows = append(data.Windows, WindowData{
			ID:         w.ID,
			App:        w.App,
			Title:      w.Title,
			X:          w.Rect.X,
			Y:          w.Rect.Y,
			Width:      w.Rect.Width,
			Height:     w.Rect.Height,
			State:      w.State.String(),
			StackOrder: w.StackOrder,
			Focused:    w.Focused,
		})
		if w.Focused {
			data.Focused = w.ID
		}
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	vp := s.manager.Viewport()
	status := StatusData{
		WindowCount:    s.manager.WindowCount(),
		Focused:        s.manager.FocusedID(),
		ViewportWidth:  vp.Width,
		ViewportHeight: vp.Height,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		HostRunning:    true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) changed() {
	if s.notify != nil {
		s.notify()
	}
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
