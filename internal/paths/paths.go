package paths

import (
	"io"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "flavoricons"
	ConfigFileName = "flavoricons-config.json"
	LedgerFileName = "flavoricons.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// SameDir reports whether a and b name the same directory once made
// absolute and cleaned. Symlinks are not resolved.
func SameDir(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	return AtomicWriteFunc(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWriteFunc is AtomicWrite for streaming producers such as image
// encoders. The temporary file is removed if write or rename fails.
func AtomicWriteFunc(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePerm)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for flavoricons:
//   - Windows: %APPDATA%\flavoricons
//   - Unix:    ~/.config/flavoricons
//
// Falls back to os.TempDir()/flavoricons if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
