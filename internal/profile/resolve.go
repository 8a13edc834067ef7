package profile

import (
	"strconv"

	"github.com/koustreak/bootprofile/internal/errs"
)

// Resolve computes the configuration for in. It is a pure function:
// identical inputs give identical results and nothing outside the
// returned value is touched.
//
// An unsupported database selector fails with errs.ErrKindConfiguration
// and no configuration is returned.
func Resolve(in Input) (Configuration, error) {
	db, hasDB, err := LookupDatabase(in.Selector)
	if err != nil {
		return Configuration{}, err
	}

	fork := in.Fork
	switch {
	case fork == 0:
		fork = DefaultFork
	case fork < 0:
		return Configuration{}, errs.Newf(errs.ErrKindInvalidInput, "fork count must be >= 1, got %d", fork)
	}

	tls := strconv.FormatBool(in.TLS)
	entries := map[string]string{
		KeySSLEnabled:   tls,
		KeyHTTP2Enabled: tls,
		KeyForkCount:    strconv.Itoa(fork),
	}

	if hasDB {
		entries[KeyDatasourceURL] = db.URL
		entries[KeyDropScript] = db.DropScript()
		entries[KeyCreateScript] = db.CreateScript()
		entries[KeySeedScript] = db.SeedScript()
	}

	if in.Port < 0 {
		return Configuration{}, errs.Newf(errs.ErrKindInvalidInput, "port must be >= 1, got %d", in.Port)
	}
	if in.Port > 0 {
		entries[KeyServerPort] = strconv.Itoa(in.Port)
	}

	name, tag := imageName(in.Project), in.Tag
	if tag == "" {
		tag = in.Project.Version
	}
	entries[KeyImageName] = name
	entries[KeyImageTags] = name + ":" + tag

	return Configuration{entries: entries}, nil
}

func imageName(p Project) string {
	if p.ImageRepository == "" {
		return p.Name
	}
	return p.ImageRepository + "/" + p.Name
}

// ResolveParams parses p and resolves it in one step.
func ResolveParams(p Params, project Project) (Configuration, error) {
	in, err := ParseInput(p, project)
	if err != nil {
		return Configuration{}, err
	}
	return Resolve(in)
}
