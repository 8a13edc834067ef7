package profile

import (
	"path"
	"strings"

	"github.com/koustreak/bootprofile/internal/errs"
)

// Selector names a database profile. The zero value means no selection:
// the application falls back to its own datasource defaults.
type Selector string

const (
	SelectorNone   Selector = ""
	SelectorMySQL  Selector = "mysql"
	SelectorOracle Selector = "oracle"
)

// DatabaseProfile is the fixed connection and script data for one selector.
type DatabaseProfile struct {
	Selector  Selector
	URL       string
	ScriptDir string
}

// DropScript returns the path of the schema drop script, relative to the
// application's script root.
func (p DatabaseProfile) DropScript() string { return path.Join(p.ScriptDir, "drop.sql") }

// CreateScript returns the path of the schema create script.
func (p DatabaseProfile) CreateScript() string { return path.Join(p.ScriptDir, "create.sql") }

// SeedScript returns the path of the data load script.
func (p DatabaseProfile) SeedScript() string { return path.Join(p.ScriptDir, "insert.sql") }

var databaseProfiles = map[Selector]DatabaseProfile{
	SelectorMySQL: {
		Selector:  SelectorMySQL,
		URL:       "jdbc:mysql://localhost/filiale",
		ScriptDir: "mysql",
	},
	SelectorOracle: {
		Selector:  SelectorOracle,
		URL:       "jdbc:oracle:thin:@localhost/XEPDB1",
		ScriptDir: "oracle",
	},
}

// Selectors returns the supported selectors in a stable order.
func Selectors() []Selector {
	return []Selector{SelectorMySQL, SelectorOracle}
}

// LookupDatabase returns the profile for s. ok is false for SelectorNone.
// Any other unknown selector is a configuration error.
func LookupDatabase(s Selector) (DatabaseProfile, bool, error) {
	if s == SelectorNone {
		return DatabaseProfile{}, false, nil
	}
	p, found := databaseProfiles[s]
	if !found {
		return DatabaseProfile{}, false, errs.Newf(errs.ErrKindConfiguration,
			"unsupported database selector %q: use db=%s", string(s), joinSelectors(" or db="))
	}
	return p, true, nil
}

func joinSelectors(sep string) string {
	names := make([]string, 0, len(databaseProfiles))
	for _, s := range Selectors() {
		names = append(names, string(s))
	}
	return strings.Join(names, sep)
}
