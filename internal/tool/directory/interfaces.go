package directory

import "os"

// fileSystem defines the filesystem operations needed for directory listing.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	ReadFile(path string) ([]byte, error)
}

// osFileSystem implements fileSystem with the os package.
type osFileSystem struct{}

func (osFileSystem) Stat(path string) (os.FileInfo, error)      { return os.Stat(path) }
func (osFileSystem) ReadDir(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }
func (osFileSystem) ReadFile(path string) ([]byte, error)       { return os.ReadFile(path) }
