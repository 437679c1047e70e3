package core

import (
	"path"
	"path/filepath"
	"strings"
)

func NormalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// ResolveStaticPath maps a request path under mount onto a file below root.
// It reports false when the path is outside the mount, names the mount
// itself, has a dot-prefixed segment (dotfiles and "..") or would escape
// root.
func ResolveStaticPath(root, mount, urlPath string) (string, bool) {
	mount = NormalizePath(mount)
	if mount != "/" {
		rest, ok := strings.CutPrefix(urlPath, mount)
		if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
			return "", false
		}
		urlPath = rest
	}

	if strings.Contains(urlPath, "\x00") {
		return "", false
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" {
		return "", false
	}

	return filepath.Join(root, filepath.FromSlash(rel)), true
}
