package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/openwebdesk/deskwm/internal/ipc"
)

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm open [--id ID] [--new] <app>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window for a catalog app. Opening the same app again refocuses")
		fmt.Fprintln(os.Stderr, "its window unless --new or a fresh --id is given.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	id := fs.String("id", "", "Window id (default: the app name)")
	newInstance := fs.Bool("new", false, "Always open a fresh window with a generated id")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "open requires <app>")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	openedID, err := client.Open(fs.Arg(0), *id, *newInstance)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(openedID)
	return 0
}

// runWindowOp covers the single-id lifecycle commands, which differ only in
// the IPC method they invoke.
func runWindowOp(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskwm %s <id>\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires <id>\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	var err error
	switch name {
	case "close":
		err = client.Close(fs.Arg(0))
	case "focus":
		err = client.Focus(fs.Arg(0))
	case "minimize":
		err = client.Minimize(fs.Arg(0))
	case "maximize":
		err = client.Maximize(fs.Arg(0))
	case "restore":
		err = client.Restore(fs.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm move <id> <x> <y>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "move requires <id> <x> <y>")
		fs.Usage()
		return 2
	}
	x, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid x: %v\n", err)
		return 2
	}
	y, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid y: %v\n", err)
		return 2
	}

	client := ipc.NewClient()
	if err := client.Move(fs.Arg(0), x, y); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runResize(args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm resize <id> <width> <height>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "resize requires <id> <width> <height>")
		fs.Usage()
		return 2
	}
	width, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid width: %v\n", err)
		return 2
	}
	height, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid height: %v\n", err)
		return 2
	}

	client := ipc.NewClient()
	if err := client.Resize(fs.Arg(0), width, height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLs(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm ls")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List open windows back to front. The focused window is marked *.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "ls takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, w := range data.Windows {
		mark := " "
		if w.Focused {
			mark = "*"
		}
		fmt.Printf("%s %-16s %-10s %-10s %4dx%-4d at (%d,%d)\n",
			mark, w.ID, w.App, w.State, w.Width, w.Height, w.X, w.Y)
	}
	return 0
}
