package appdirs

import (
	"os"
	"path/filepath"
)

const appDirName = "spellfix"

func DataDir() (string, error) {
	if override := os.Getenv("SPELLFIX_DATA_DIR"); override != "" {
		return override, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}
