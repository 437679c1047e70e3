package usecase

import (
	"fmt"
	"os/exec"
)

type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckWarn
	CheckFail
)

type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}

type DoctorInput struct {
	BundlePath   string
	TemplatePath string
	PublicDir    string
	DistDir      string
	Runtime      string
}

type DoctorService struct {
	fs       FileSystem
	lookPath func(string) (string, error)
}

func NewDoctorService(fsys FileSystem) *DoctorService {
	return &DoctorService{fs: fsys, lookPath: exec.LookPath}
}

func (s *DoctorService) Diagnose(input DoctorInput) []Check {
	checks := make([]Check, 0, 5)

	if bundle, err := LoadBundle(s.fs, input.BundlePath); err != nil {
		checks = append(checks, Check{Name: "server bundle", Status: CheckFail, Detail: err.Error()})
	} else {
		checks = append(checks, Check{
			Name:   "server bundle",
			Status: CheckOK,
			Detail: fmt.Sprintf("%s (entry %s, %d files, %d bytes)", input.BundlePath, bundle.Entry, len(bundle.Files), bundle.Size()),
		})
	}

	if _, err := LoadTemplate(s.fs, input.TemplatePath); err != nil {
		checks = append(checks, Check{Name: "template", Status: CheckFail, Detail: err.Error()})
	} else {
		checks = append(checks, Check{Name: "template", Status: CheckOK, Detail: input.TemplatePath})
	}

	checks = append(checks, s.checkDir("public dir", input.PublicDir))
	checks = append(checks, s.checkDir("dist dir", input.DistDir))

	if path, err := s.lookPath(input.Runtime); err != nil {
		checks = append(checks, Check{Name: "runtime", Status: CheckFail, Detail: fmt.Sprintf("%s not found on PATH", input.Runtime)})
	} else {
		checks = append(checks, Check{Name: "runtime", Status: CheckOK, Detail: path})
	}

	return checks
}

func (s *DoctorService) checkDir(name, dir string) Check {
	if s.fs.IsDir(dir) {
		return Check{Name: name, Status: CheckOK, Detail: dir}
	}
	return Check{Name: name, Status: CheckWarn, Detail: fmt.Sprintf("%s does not exist, nothing will be served from it", dir)}
}

// Report prints checks and reports whether every check passed.
func Report(out CLIOutput, checks []Check) bool {
	out.PrintHeader("ssrkit doctor")

	ok := true
	for _, c := range checks {
		switch c.Status {
		case CheckOK:
			out.PrintSuccess("%s: %s", c.Name, c.Detail)
		case CheckWarn:
			out.PrintWarning("%s: %s", c.Name, c.Detail)
		case CheckFail:
			ok = false
			out.PrintError("%s: %s", c.Name, c.Detail)
		}
	}

	if ok {
		out.PrintDone("All checks passed")
	} else {
		out.PrintDone("Some checks failed")
	}
	return ok
}
