package main

import (
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/spf13/cobra"
)

// paramFlags binds the build parameters. Port and fork stay strings so
// that a malformed value reaches the profile parser and fails there
// with a parse error.
type paramFlags struct {
	profile.Params
}

func (p *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&p.DB, "db", "", "database selector: mysql or oracle (default: application default)")
	fs.StringVar(&p.TLS, "tls", "", `"false" disables TLS and HTTP/2`)
	fs.StringVar(&p.Port, "port", "", "listening port override")
	fs.StringVar(&p.Fork, "fork", "", "test-runner parallelism (default 1)")
	fs.StringVar(&p.Tag, "tag", "", "image tag (default: project version)")
}

// resolve parses and resolves the bound parameters for project.
func (p *paramFlags) resolve(project profile.Project) (profile.Configuration, error) {
	return profile.ResolveParams(p.Params, project)
}

// taskProfile resolves the parameters and narrows them to task. An empty
// task yields the plain resolved configuration.
func (p *paramFlags) taskProfile(project profile.Project, task string) (profile.TaskProfile, error) {
	cfg, err := p.resolve(project)
	if err != nil {
		return profile.TaskProfile{}, err
	}
	if task == "" {
		return profile.TaskProfile{Properties: cfg}, nil
	}

	t, err := profile.ParseTask(task)
	if err != nil {
		return profile.TaskProfile{}, err
	}
	return profile.ForTask(cfg, t)
}

// tag returns the image tag the parameters resolve to.
func (p *paramFlags) tag(project profile.Project) string {
	if p.Tag != "" {
		return p.Tag
	}
	return project.Version
}

// taskNames lists the task arguments resolve and publish accept.
func taskNames() []string {
	tasks := profile.Tasks()
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = string(t)
	}
	return names
}
