package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
)

type recordingOutput struct {
	lines []string
}

func (o *recordingOutput) PrintHeader(msg string) { o.lines = append(o.lines, "header:"+msg) }
func (o *recordingOutput) PrintSuccess(msg string, args ...any) {
	o.lines = append(o.lines, "ok:"+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintWarning(msg string, args ...any) {
	o.lines = append(o.lines, "warn:"+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintError(msg string, args ...any) {
	o.lines = append(o.lines, "error:"+fmt.Sprintf(msg, args...))
}
func (o *recordingOutput) PrintDone(msg string) { o.lines = append(o.lines, "done:"+msg) }

func TestDiagnose(t *testing.T) {
	files := writeArtifacts(t)
	publicDir := filepath.Join(files.dir, "public")
	if err := os.Mkdir(publicDir, 0755); err != nil {
		t.Fatal(err)
	}

	svc := NewDoctorService(fs.NewOSFileSystem())
	svc.lookPath = func(name string) (string, error) {
		if name == "node" {
			return "/usr/bin/node", nil
		}
		return "", errors.New("not found")
	}

	t.Run("healthy project", func(t *testing.T) {
		checks := svc.Diagnose(DoctorInput{
			BundlePath:   files.bundlePath,
			TemplatePath: files.templatePath,
			PublicDir:    publicDir,
			DistDir:      filepath.Join(files.dir, "dist"),
			Runtime:      "node",
		})

		want := []CheckStatus{CheckOK, CheckOK, CheckOK, CheckWarn, CheckOK}
		if len(checks) != len(want) {
			t.Fatalf("got %d checks, want %d", len(checks), len(want))
		}
		for i, c := range checks {
			if c.Status != want[i] {
				t.Errorf("check %s: status %d, want %d (%s)", c.Name, c.Status, want[i], c.Detail)
			}
		}

		out := &recordingOutput{}
		if !Report(out, checks) {
			t.Error("warnings alone should not fail the report")
		}
	})

	t.Run("missing artifacts and runtime", func(t *testing.T) {
		checks := svc.Diagnose(DoctorInput{
			BundlePath:   filepath.Join(files.dir, "missing.json"),
			TemplatePath: filepath.Join(files.dir, "missing.html"),
			PublicDir:    publicDir,
			DistDir:      publicDir,
			Runtime:      "deno",
		})

		out := &recordingOutput{}
		if Report(out, checks) {
			t.Error("report should fail")
		}

		failures := 0
		for _, c := range checks {
			if c.Status == CheckFail {
				failures++
			}
		}
		if failures != 3 {
			t.Errorf("failures = %d, want 3", failures)
		}
		if last := out.lines[len(out.lines)-1]; last != "done:Some checks failed" {
			t.Errorf("last line = %q", last)
		}
	})
}
