package sqlitedb

import (
	"testing"

	"prizzys-backend/internal/infrastructure/db"
)

func TestOpen_MigratesEveryModel(t *testing.T) {
	gdb := Open(t)
	for _, m := range db.Models {
		if !gdb.Migrator().HasTable(m) {
			t.Fatalf("table for %T missing", m)
		}
	}
}
