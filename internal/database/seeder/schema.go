package seeder

import (
	"context"
	"fmt"

	"collab-match/internal/database"
)

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

// CheckCollaboratorSchema verifies that the migrations the seeders rely on
// have been applied.
func CheckCollaboratorSchema(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "collaborators", "id", "email", "name", "role", "level", "created_at", "updated_at"); err != nil {
		return err
	}
	return EnsureTableColumns(ctx, db, "collaborator_skills", "collaborator_id", "position", "name", "level")
}
