package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"collab-match/internal/database"
	"collab-match/migrations"
)

const lockKey int64 = 581203447

var ErrChecksumMismatch = errors.New("applied migration was modified")

type Migration struct {
	Version  int64
	Name     string
	SQL      string
	Checksum string
}

func (m Migration) String() string {
	return fmt.Sprintf("V%d__%s", m.Version, m.Name)
}

// Runner applies V<n>__<name>.sql files from Source in version order. The
// whole batch runs in one transaction holding a transaction-scoped advisory
// lock, so concurrent starts serialize and a failed file leaves nothing
// half-applied.
type Runner struct {
	// Source defaults to the files embedded in the binary.
	Source fs.FS
	Logger *log.Logger
}

// Source returns dir as a file system, or the embedded migrations when dir is
// blank.
func Source(dir string) fs.FS {
	if strings.TrimSpace(dir) == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

// Run applies pending migrations and returns them in the order applied.
func (r Runner) Run(ctx context.Context, db database.DB) ([]Migration, error) {
	if db == nil {
		return nil, database.ErrNilDB
	}
	src := r.Source
	if src == nil {
		src = migrations.FS
	}

	migs, err := Load(src)
	if err != nil {
		return nil, err
	}
	if len(migs) == 0 {
		return nil, nil
	}

	var applied []Migration
	err = db.InTx(ctx, func(q database.Querier) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}
		if _, err := q.Exec(ctx, createHistoryTable); err != nil {
			return fmt.Errorf("create migration history: %w", err)
		}

		done, err := appliedChecksums(ctx, q)
		if err != nil {
			return err
		}
		todo, err := pending(migs, done)
		if err != nil {
			return err
		}

		for _, m := range todo {
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("apply %s: %w", m, err)
			}
			if _, err := q.Exec(ctx,
				`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
				m.Version, m.Name, m.Checksum,
			); err != nil {
				return fmt.Errorf("record %s: %w", m, err)
			}
		}
		applied = todo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.Logger != nil {
		for _, m := range applied {
			r.Logger.Info("migration applied", "version", m.Version, "name", m.Name)
		}
		if len(applied) == 0 {
			r.Logger.Debug("schema up to date", "version", migs[len(migs)-1].Version)
		}
	}
	return applied, nil
}

const createHistoryTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func appliedChecksums(ctx context.Context, q database.Querier) (map[int64]string, error) {
	rows, err := q.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read migration history: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var sum string
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, fmt.Errorf("scan migration history: %w", err)
		}
		out[v] = sum
	}
	return out, rows.Err()
}

// pending filters out applied versions. Applied files must be unchanged.
func pending(migs []Migration, done map[int64]string) ([]Migration, error) {
	var out []Migration
	for _, m := range migs {
		sum, ok := done[m.Version]
		if !ok {
			out = append(out, m)
			continue
		}
		if sum != m.Checksum {
			return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, m)
		}
	}
	return out, nil
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads every V<n>__<name>.sql file at the root of fsys, sorted by
// version. Other files are ignored.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var migs []Migration
	for _, e := range entries {
		m := fileRe.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", e.Name())
		}

		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		body := strings.TrimSpace(string(b))
		if body == "" {
			return nil, fmt.Errorf("empty migration file: %s", e.Name())
		}

		h := sha256.Sum256([]byte(body))
		migs = append(migs, Migration{Version: v, Name: m[2], SQL: body, Checksum: hex.EncodeToString(h[:])})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}
