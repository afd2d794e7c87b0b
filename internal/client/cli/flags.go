package cli

import (
	"os"
	"path/filepath"
)

// Flags holds all command-line flag values
type Flags struct {
	CfgFile   string
	Server    string
	StateFile string
	Verbose   bool

	// Reset flags
	Email string
	Token string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Server:    "http://localhost:8080",
		StateFile: defaultStatePath(),
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vocabdeck.json"
	}
	return filepath.Join(dir, "vocabdeck", "state.json")
}
