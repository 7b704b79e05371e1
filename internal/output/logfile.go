package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITMENU_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitmenu/logs/gitmenu.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITMENU_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "gitmenu.log"
	}

	return filepath.Join(homeDir, ".gitmenu", "logs", "gitmenu.log")
}
