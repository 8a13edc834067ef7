// Package profile resolves sparse build parameters into the complete
// configuration handed to the application launcher, the test runner and
// the image builder.
//
// Usage:
//
//	in, err := profile.ParseInput(profile.Params{DB: "mysql", Fork: "4"}, profile.DefaultProject())
//	if err != nil { ... }
//	cfg, err := profile.Resolve(in)
//	if err != nil { ... }
//	tp, err := profile.ForTask(cfg, profile.TaskTest)
package profile

import (
	"strconv"

	"github.com/koustreak/bootprofile/internal/errs"
)

// Params holds the raw external parameters. The empty string means the
// parameter was not supplied.
type Params struct {
	DB   string
	TLS  string
	Port string
	Fork string
	Tag  string
}

// Project identifies the application whose profile is being resolved.
type Project struct {
	Name            string
	Version         string
	ImageRepository string
}

// DefaultProject returns the project the build script was written for.
func DefaultProject() Project {
	return Project{
		Name:            "filiale",
		Version:         "1.0.0",
		ImageRepository: "juergenzimmermann",
	}
}

// Input is the parsed, immutable set of parameters consumed by Resolve.
type Input struct {
	Selector Selector
	TLS      bool
	Port     int // 0 when not supplied
	Fork     int
	Tag      string // empty means Project.Version
	Project  Project
}

// DefaultFork is the test-runner parallelism used when fork is not supplied.
const DefaultFork = 1

// ParseInput converts raw parameters into an Input. Port and fork must be
// positive base-10 integers when present; anything else is a parse error.
// The database selector is carried as given and validated by Resolve.
func ParseInput(p Params, project Project) (Input, error) {
	in := Input{
		Selector: Selector(p.DB),
		TLS:      parseTLS(p.TLS),
		Fork:     DefaultFork,
		Tag:      p.Tag,
		Project:  project,
	}

	if p.Port != "" {
		port, err := parsePositive("port", p.Port)
		if err != nil {
			return Input{}, err
		}
		in.Port = port
	}

	if p.Fork != "" {
		fork, err := parsePositive("fork", p.Fork)
		if err != nil {
			return Input{}, err
		}
		in.Fork = fork
	}

	return in, nil
}

// parseTLS reports false only for the spellings "false" and "FALSE".
// Anything else, "False" included, keeps TLS on.
func parseTLS(raw string) bool {
	return raw != "false" && raw != "FALSE"
}

func parsePositive(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.ErrKindParse, "parameter "+name+" must be an integer, got "+strconv.Quote(raw), err)
	}
	if n < 1 {
		return 0, errs.Newf(errs.ErrKindParse, "parameter %s must be >= 1, got %d", name, n)
	}
	return n, nil
}
