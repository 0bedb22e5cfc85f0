package turso_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/emiliopalmerini/dustlog/internal/adapters/turso"
)

func TestLogRepository_ListByTool(t *testing.T) {
	db := testDB(t)
	seed(t, db,
		seedRow{"2023-07-11 08:11:11", "Planer", " ON"},
		seedRow{"2023-07-10 18:20:35", "Planer", " ON"},
		seedRow{"2023-07-10 18:21:00", "Miter Saw", " ON"},
		seedRow{"2023-07-10 18:22:07", "Planer", " OFF"},
	)
	repo := turso.NewLogRepository(db)

	rows, err := repo.ListByTool(context.Background(), "Planer")
	if err != nil {
		t.Fatalf("ListByTool error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	got := []string{rows[0].Timestamp, rows[1].Timestamp, rows[2].Timestamp}
	want := []string{"2023-07-10 18:20:35", "2023-07-10 18:22:07", "2023-07-11 08:11:11"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows not ordered by timestamp: %v", got)
	}
	if rows[0].State != " ON" {
		t.Errorf("expected raw state text to be preserved, got %q", rows[0].State)
	}
	if rows[0].Topic != "tools/dust_collection" {
		t.Errorf("unexpected topic %q", rows[0].Topic)
	}
}

func TestLogRepository_ListByTool_UnknownTool(t *testing.T) {
	db := testDB(t)
	seed(t, db, seedRow{"2023-07-10 18:20:35", "Planer", "ON"})
	repo := turso.NewLogRepository(db)

	rows, err := repo.ListByTool(context.Background(), "Jointer")
	if err != nil {
		t.Fatalf("ListByTool error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestLogRepository_ListTools(t *testing.T) {
	db := testDB(t)
	seed(t, db,
		seedRow{"2023-07-10 18:20:35", "Planer", "ON"},
		seedRow{"2023-07-10 18:21:00", "Miter Saw", "ON"},
		seedRow{"2023-07-10 18:22:07", "Planer", "OFF"},
	)
	repo := turso.NewLogRepository(db)

	tools, err := repo.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools error: %v", err)
	}
	if !reflect.DeepEqual(tools, []string{"Miter Saw", "Planer"}) {
		t.Errorf("unexpected tools: %v", tools)
	}
}

func TestLogRepository_Tail(t *testing.T) {
	db := testDB(t)
	seed(t, db,
		seedRow{"2023-07-10 18:00:00", "Planer", "ON"},
		seedRow{"2023-07-10 18:01:00", "Planer", "OFF"},
		seedRow{"2023-07-10 18:02:00", "Edge Sander", "ON"},
		seedRow{"2023-07-10 18:03:00", "Edge Sander", "OFF"},
	)
	repo := turso.NewLogRepository(db)

	tests := []struct {
		name    string
		n       int
		wantIDs []int64
	}{
		{"last two ascending", 2, []int64{3, 4}},
		{"more than available", 10, []int64{1, 2, 3, 4}},
		{"zero", 0, []int64{}},
		{"negative", -5, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.Tail(context.Background(), tt.n)
			if err != nil {
				t.Fatalf("Tail error: %v", err)
			}
			ids := make([]int64, len(rows))
			for i, r := range rows {
				ids[i] = r.ID
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Tail(%d) ids = %v, want %v", tt.n, ids, tt.wantIDs)
			}
		})
	}
}
