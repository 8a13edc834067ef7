package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/koustreak/bootprofile/internal/logger"
)

// Script is one schema script loaded from disk.
type Script struct {
	Name string // drop, create or insert
	Path string
	SQL  string
}

// Scripts holds a database's schema scripts in execution order.
type Scripts struct {
	Dir  string
	List []Script
}

// scriptNames is the order the schema generator runs them in.
var scriptNames = []string{"drop", "create", "insert"}

// LoadScripts reads drop.sql, create.sql and insert.sql from root/dir.
// A missing script is a not-found error.
func LoadScripts(root, dir string) (*Scripts, error) {
	s := &Scripts{Dir: filepath.Join(root, dir)}

	for _, name := range scriptNames {
		path := filepath.Join(s.Dir, name+".sql")
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errs.Wrap(errs.ErrKindNotFound, "schema script "+path+" does not exist", err)
			}
			return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot read schema script "+path, err)
		}
		s.List = append(s.List, Script{Name: name, Path: path, SQL: string(data)})
	}

	return s, nil
}

// ApplyScripts executes the scripts in order and stops at the first failure.
// Empty scripts are skipped.
func ApplyScripts(ctx context.Context, db DB, s *Scripts, log *logger.Logger) error {
	for _, script := range s.List {
		l := log.With().Str("script", script.Name).Str("path", script.Path).Logger()

		if len(script.SQL) == 0 {
			l.Debug("skipping empty script")
			continue
		}

		start := time.Now()
		if err := db.Exec(ctx, script.SQL); err != nil {
			l.ErrorWith("script failed", err, nil)
			return fmt.Errorf("running %s script: %w", script.Name, err)
		}
		l.InfoWith("script applied", map[string]any{"elapsed_ms": time.Since(start).Milliseconds()})
	}
	return nil
}
