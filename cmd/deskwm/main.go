package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/diag"
	"github.com/openwebdesk/deskwm/internal/geometry"
	"github.com/openwebdesk/deskwm/internal/ipc"
	"github.com/openwebdesk/deskwm/internal/session"
	"github.com/openwebdesk/deskwm/internal/tui"
	"github.com/openwebdesk/deskwm/internal/wm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDesktop(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "close":
		os.Exit(runWindowOp("close", os.Args[2:]))
	case "focus":
		os.Exit(runWindowOp("focus", os.Args[2:]))
	case "minimize":
		os.Exit(runWindowOp("minimize", os.Args[2:]))
	case "maximize":
		os.Exit(runWindowOp("maximize", os.Args[2:]))
	case "restore":
		os.Exit(runWindowOp("restore", os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "ls":
		os.Exit(runLs(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "session":
		os.Exit(runSession(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the desktop host (foreground, needs a TTY)")
	fmt.Fprintln(w, "  status              Show desktop host status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  open                Open a window for a catalog app")
	fmt.Fprintln(w, "  close               Close a window")
	fmt.Fprintln(w, "  focus               Bring a window to the front")
	fmt.Fprintln(w, "  minimize            Minimize a window to the taskbar")
	fmt.Fprintln(w, "  maximize            Maximize a window (toggle)")
	fmt.Fprintln(w, "  restore             Restore a minimized or maximized window")
	fmt.Fprintln(w, "  move                Move a window")
	fmt.Fprintln(w, "  resize              Resize a window")
	fmt.Fprintln(w, "  ls                  List open windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "  session clear       Delete the saved window layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

func runDesktop(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm run [--config PATH] [--no-restore]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the desktop host in the current terminal. The host owns the")
		fmt.Fprintln(os.Stderr, "window state and serves IPC for the other commands and MCP clients.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  n         Open a new terminal window")
		fmt.Fprintln(os.Stderr, "  x         Close the focused window")
		fmt.Fprintln(os.Stderr, "  m         Minimize the focused window")
		fmt.Fprintln(os.Stderr, "  z         Maximize the focused window (toggle)")
		fmt.Fprintln(os.Stderr, "  Tab       Cycle focus")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	noRestore := fs.Bool("no-restore", false, "Start with an empty desktop instead of the saved session")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "run requires an interactive terminal (stdin/stdout must be TTYs)")
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using builtin app catalog\n", err)
		cfg = &config.Config{Apps: config.BuiltinApps()}
	}

	logCfg := cfg.GetLoggingConfig()
	logger, err := diag.NewLogger(diag.Config{
		Enabled:   logCfg.Enabled,
		Level:     diag.ParseLogLevel(logCfg.Level),
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: diagnostics disabled: %v\n", err)
		logger = nil
	}

	manager := wm.NewManager(cfg)
	if logger != nil {
		manager.SetLogger(logger)
		defer logger.Close()
	}

	// Persist the layout after every committed mutation so a crash loses at
	// most the in-flight gesture.
	saveSession := func() {
		if err := session.Save(session.Capture(manager)); err != nil {
			log.Printf("session save failed: %v", err)
		}
	}
	manager.SetHooks(wm.Hooks{
		OnWindowOpened:    func(wm.WindowInfo) { saveSession() },
		OnWindowClosed:    func(wm.WindowInfo) { saveSession() },
		OnGeometryChanged: func(string, geometry.Rect) { saveSession() },
		OnStateChanged:    func(string, wm.State) { saveSession() },
	})

	host := tui.NewHost(manager, cfg, !*noRestore)

	ipcServer, err := ipc.NewServer(manager, host.Refresh)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer ipcServer.Stop()

	if err := host.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	saveSession()
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show desktop host status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("host_running:   %v\n", status.HostRunning)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("focused:        %s\n", status.Focused)
	fmt.Printf("viewport:       %dx%d\n", status.ViewportWidth, status.ViewportHeight)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}
