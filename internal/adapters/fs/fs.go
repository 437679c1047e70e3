package fs

// FileSystem is the read side the host needs for build artifacts.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	IsDir(path string) bool
}
