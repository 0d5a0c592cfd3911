package database

import "testing"

func TestOpenAppliesPragmas(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("read busy_timeout pragma: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestOpenCascadesOnDelete(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	res, err := db.Exec("INSERT INTO ambassadors (name, username, pin_hash) VALUES ('Ayşe', 'ayse', 'x')")
	if err != nil {
		t.Fatalf("insert ambassador: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	if _, err := db.Exec("INSERT INTO daily_logs (ambassador_id, log_date, story) VALUES (?, '2024-01-01', 1)", id); err != nil {
		t.Fatalf("insert daily log: %v", err)
	}
	if _, err := db.Exec("INSERT INTO adjustments (ambassador_id, adj_date, delta) VALUES (?, '2024-01-01', 25)", id); err != nil {
		t.Fatalf("insert adjustment: %v", err)
	}

	if _, err := db.Exec("DELETE FROM ambassadors WHERE id = ?", id); err != nil {
		t.Fatalf("delete ambassador: %v", err)
	}

	for _, table := range []string{"daily_logs", "adjustments"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE ambassador_id = ?", id).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s rows after delete = %d, want 0", table, count)
		}
	}
}
