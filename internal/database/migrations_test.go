package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type boolRow struct {
	value bool
	err   error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.value
	return nil
}

type stubExecer struct {
	exists bool
	rowErr error
	execs  []string
}

func (s *stubExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (s *stubExecer) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return boolRow{value: s.exists, err: s.rowErr}
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	db := &stubExecer{}
	if err := RunMigrations(context.Background(), db, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0], "CREATE TABLE IF NOT EXISTS financial_records") {
		t.Errorf("expected schema to be applied once, got %d execs", len(db.execs))
	}
}

func TestRunMigrations_AlreadyMigrated(t *testing.T) {
	db := &stubExecer{exists: true}
	if err := RunMigrations(context.Background(), db, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.execs) != 0 {
		t.Errorf("expected no exec, got %d", len(db.execs))
	}
}

func TestRunMigrations_CheckFails(t *testing.T) {
	db := &stubExecer{rowErr: errors.New("connection refused")}
	if err := RunMigrations(context.Background(), db, zerolog.Nop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSchema_HasUsersAndRecords(t *testing.T) {
	s := Schema()
	for _, table := range []string{"users", "financial_records"} {
		if !strings.Contains(s, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("schema missing table %s", table)
		}
	}
}
