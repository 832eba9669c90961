package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "vanaclone"

	// DisplayName is shown in UI headers
	DisplayName = "VANACLONE"

	// AppExeName is the executable name (without extension)
	AppExeName = "vanaclone"

	// EnvPrefix prefixes every environment variable the app reads
	EnvPrefix = "VANACLONE"
)

// Version is overridden at link time with -ldflags "-X ...application.Version=..."
var Version = "0.3.0"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the vanaclone data directory path.
// Linux: ~/.config/vanaclone (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\vanaclone (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

// EnsureDir creates dir (and parents) with owner-only permissions.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
