package core

import (
	"path/filepath"
	"testing"
)

func TestResolveStaticPath(t *testing.T) {
	root := filepath.FromSlash("/srv/dist")

	tests := []struct {
		name   string
		mount  string
		path   string
		want   string
		wantOK bool
	}{
		{"file under mount", "/dist", "/dist/main.js", filepath.Join(root, "main.js"), true},
		{"nested file", "/dist", "/dist/img/a.png", filepath.Join(root, "img", "a.png"), true},
		{"mount itself", "/dist", "/dist", "", false},
		{"mount with slash", "/dist", "/dist/", "", false},
		{"sibling prefix", "/dist", "/distro/main.js", "", false},
		{"traversal", "/dist", "/dist/../secret", "", false},
		{"root mount file", "/", "/favicon.ico", filepath.Join(root, "favicon.ico"), true},
		{"root mount itself", "/", "/", "", false},
		{"root traversal", "/", "/../etc/passwd", "", false},
		{"dotfile", "/", "/.env", "", false},
		{"dot directory", "/dist", "/dist/.git/config", "", false},
		{"dot inside a name", "/", "/app.min.js", filepath.Join(root, "app.min.js"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveStaticPath(root, tt.mount, tt.path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveStaticPath() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGetContentType(t *testing.T) {
	if ct := GetContentType("a/b/Main.JS"); ct != "application/javascript" {
		t.Errorf("got %s", ct)
	}
	if ct := GetContentType("file.unknown"); ct != "application/octet-stream" {
		t.Errorf("got %s", ct)
	}
}
