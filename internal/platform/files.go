package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Application data layout
const (
	AppDirName      = "video-batch-upload-tool"
	LicenseFileName = "license.json"
	LogDirName      = "logs"
	CoverDirName    = "covers"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// UserDataDir returns the per-user application data directory, creating it if needed.
// On macOS this is ~/Library/Application Support/<app>, on Windows %APPDATA%\<app>.
func UserDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	dir := filepath.Join(base, AppDirName)
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// LicensePath returns where the license record is stored
func LicensePath() (string, error) {
	dir, err := UserDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LicenseFileName), nil
}

// LogDir returns the directory for rotated application logs
func LogDir() (string, error) {
	return subDir(LogDirName)
}

// CoverDir returns the directory extracted cover frames are written to
func CoverDir() (string, error) {
	return subDir(CoverDirName)
}

func subDir(name string) (string, error) {
	dir, err := UserDataDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, name)
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// RevealFile shows path in the system file manager. Linux has no standard way to
// select a file, so its parent directory is opened instead.
func RevealFile(path string) error {
	abs, err := existingPath(path)
	if err != nil {
		return err
	}
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, abs).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, abs).Run()
	case OSLinux:
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		return openLinux(abs)
	}
	return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
}

// OpenFile opens path with its default application, e.g. a video player
func OpenFile(path string) error {
	abs, err := existingPath(path)
	if err != nil {
		return err
	}
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, abs).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", abs).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, abs).Run()
	}
	return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
}

func existingPath(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

// openLinux tries xdg-open first, then any known file manager
func openLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}
