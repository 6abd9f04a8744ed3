package audit

import (
	"strconv"
	"testing"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

func TestInMemoryAuditor_GetRecent(t *testing.T) {
	a := NewInMemoryAuditor()
	for i := 0; i < 5; i++ {
		if err := a.Log(core.AuditRecord{ID: strconv.Itoa(i)}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Partial", 2, 2},
		{"All", 5, 5},
		{"Over", 100, 5},
		{"Zero", 0, 0},
		{"Negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := a.GetRecent(tt.limit)
			if err != nil {
				t.Fatalf("GetRecent(%d) error = %v", tt.limit, err)
			}
			if len(records) != tt.want {
				t.Errorf("GetRecent(%d) returned %d records, want %d", tt.limit, len(records), tt.want)
			}
		})
	}

	// the newest records come back
	records, _ := a.GetRecent(2)
	if records[0].ID != "3" || records[1].ID != "4" {
		t.Errorf("GetRecent(2) = %s, %s; want 3, 4", records[0].ID, records[1].ID)
	}
}

func TestInMemoryAuditor_Find(t *testing.T) {
	a := NewInMemoryAuditor()
	for i := 0; i < 4; i++ {
		principal := "agent:a"
		if i%2 == 1 {
			principal = "agent:b"
		}
		_ = a.Log(core.AuditRecord{ID: strconv.Itoa(i), Principal: principal})
	}

	byPrincipal := func(p string) func(core.AuditRecord) bool {
		return func(r core.AuditRecord) bool { return r.Principal == p }
	}

	records, err := a.Find(byPrincipal("agent:a"), 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Find() returned %d records, want 2", len(records))
	}

	records, _ = a.Find(byPrincipal("agent:a"), -1)
	if len(records) != 0 {
		t.Errorf("Find() with negative limit returned %d records, want 0", len(records))
	}
}
