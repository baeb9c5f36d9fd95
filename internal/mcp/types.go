package mcp

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	App         string `json:"app" jsonschema:"required,The app name from the catalog (e.g. terminal, explorer, browser)"`
	ID          string `json:"id,omitempty" jsonschema:"Optional window id. Defaults to the app name, so reopening refocuses the existing window."`
	NewInstance bool   `json:"new_instance,omitempty" jsonschema:"When true, always open a fresh window with a generated id instead of refocusing."`
}

// OpenWindowOutput is the output for the open_window tool.
type OpenWindowOutput struct {
	ID string `json:"id"`
}

// WindowInput addresses one window by id. Shared by close_window,
// focus_window, minimize_window, maximize_window and restore_window.
type WindowInput struct {
	ID string `json:"id" jsonschema:"required,The window id as shown by list_windows"`
}

// WindowOutput is the output for single-window lifecycle tools.
type WindowOutput struct {
	ID string `json:"id"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID string `json:"id" jsonschema:"required,The window id"`
	X  int    `json:"x" jsonschema:"required,Target x position in cells"`
	Y  int    `json:"y" jsonschema:"required,Target y position in cells"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     string `json:"id" jsonschema:"required,The window id"`
	Width  int    `json:"width" jsonschema:"required,Target width in cells"`
	Height int    `json:"height" jsonschema:"required,Target height in cells"`
}

// GeometryOutput is the output for move_window and resize_window, reporting
// the committed geometry after clamping.
type GeometryOutput struct {
	ID     string `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	State  string `json:"state"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowSummary describes one open window.
type WindowSummary struct {
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

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
	Focused string          `json:"focused,omitempty"`
}
