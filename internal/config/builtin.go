package config

func boolPtr(b bool) *bool { return &b }

// BuiltinApps returns the built-in application catalog.
//
// These are always available without needing a config file. Users can
// override individual fields or add new entries in their YAML config.
// Dimensions are in host cells.
func BuiltinApps() map[string]AppConfig {
	return map[string]AppConfig{
		"terminal": {
			Title:     "Terminal",
			Width:     72,
			Height:    20,
			MinWidth:  30,
			MinHeight: 8,
			Content:   ContentTerminal,
		},
		"explorer": {
			Title:     "File Explorer",
			Width:     64,
			Height:    18,
			MinWidth:  28,
			MinHeight: 8,
			Content:   ContentExplorer,
		},
		"browser": {
			Title:     "Web Browser",
			Width:     80,
			Height:    22,
			MinWidth:  40,
			MinHeight: 10,
			Content:   ContentBrowser,
		},
		"word": {
			Title:     "Word Processor",
			Width:     70,
			Height:    22,
			MinWidth:  36,
			MinHeight: 10,
			Content:   ContentEditor,
		},
		"excel": {
			Title:     "Spreadsheet",
			Width:     76,
			Height:    20,
			MinWidth:  40,
			MinHeight: 10,
			Content:   ContentSpreadsheet,
		},
		"settings": {
			Title:     "Settings",
			Width:     54,
			Height:    16,
			MinWidth:  30,
			MinHeight: 10,
			Content:   ContentSettings,
		},
		"music": {
			Title:     "Music Player",
			Width:     48,
			Height:    12,
			MinWidth:  32,
			MinHeight: 8,
			Content:   ContentMusic,
		},
		"help": {
			Title:     "Help",
			Width:     56,
			Height:    18,
			MinWidth:  30,
			MinHeight: 8,
			Content:   ContentText,
		},
		"about": {
			Title:     "About",
			Width:     44,
			Height:    10,
			MinWidth:  44,
			MinHeight: 10,
			Resizable: boolPtr(false),
			Content:   ContentText,
		},
	}
}
