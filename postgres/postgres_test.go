package postgres

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/sqlstyle"
)

func TestFromNamed(t *testing.T) {
	conv, err := FromNamed()
	if err != nil {
		t.Fatal(err)
	}

	sql, args, err := conv.Format(
		"SELECT * FROM users WHERE race = :race AND name IN (:names)",
		map[string]any{"race": "dwarf", "names": []string{"Thorin", "Balin"}},
	)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "SELECT * FROM users WHERE race = $1 AND name IN ($2,$3)"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if diff := cmp.Diff([]any{"dwarf", "Thorin", "Balin"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFromQmark(t *testing.T) {
	conv, err := New(sqlstyle.Qmark)
	if err != nil {
		t.Fatal(err)
	}

	sql, args, err := conv.Format("SELECT * FROM t WHERE a = ? AND b = ?", []any{1, 2})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "SELECT * FROM t WHERE a = $1 AND b = $2"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if diff := cmp.Diff([]any{1, 2}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCastSurvivesConversion(t *testing.T) {
	conv, err := FromNamed()
	if err != nil {
		t.Fatal(err)
	}

	sql, _, err := conv.Format(
		"SELECT id::text FROM t WHERE id = :id",
		map[string]any{"id": 1},
	)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "SELECT id::text FROM t WHERE id = $1"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
