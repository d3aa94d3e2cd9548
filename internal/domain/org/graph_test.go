package org_test

import (
	"context"
	"sort"
	"testing"

	"hrportal/internal/domain/org"
	"hrportal/internal/domain/org/orgtest"
)

func ids(emps []org.Employee) []string {
	out := make([]string, 0, len(emps))
	for _, emp := range emps {
		out = append(out, emp.ID)
	}
	return out
}

func contains(emps []org.Employee, id string) bool {
	for _, emp := range emps {
		if emp.ID == id {
			return true
		}
	}
	return false
}

// seedTree builds:
//
//	ceo
//	├── cto
//	│   ├── dev1
//	│   └── dev2 (inactive)
//	└── cfo
func seedTree(t *testing.T) *orgtest.Memory {
	t.Helper()
	mem := orgtest.NewMemory()
	mem.Add(org.Employee{ID: "ceo", FirstName: "Ada", LastName: "Root", IsActive: true})
	mem.Add(org.Employee{ID: "cto", FirstName: "Tom", LastName: "Tech", ManagerID: "ceo", IsActive: true})
	mem.Add(org.Employee{ID: "cfo", FirstName: "Fay", LastName: "Cash", ManagerID: "ceo", IsActive: true})
	mem.Add(org.Employee{ID: "dev1", FirstName: "Dan", LastName: "One", ManagerID: "cto", IsActive: true})
	mem.Add(org.Employee{ID: "dev2", FirstName: "Dee", LastName: "Two", ManagerID: "cto", IsActive: false})
	return mem
}

func TestSubordinatesOf(t *testing.T) {
	g := org.NewGraph(seedTree(t))
	ctx := context.Background()

	reports, err := g.SubordinatesOf(ctx, "cto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 || !contains(reports, "dev1") || !contains(reports, "dev2") {
		t.Fatalf("unexpected reports %v", ids(reports))
	}

	unknown, err := g.SubordinatesOf(ctx, "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown == nil || len(unknown) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", unknown)
	}
}

func TestDirectReportsAreInRecursiveSet(t *testing.T) {
	mem := seedTree(t)
	g := org.NewGraph(mem)
	ctx := context.Background()

	all, _ := mem.ListAll(ctx)
	for _, manager := range all {
		direct, err := g.SubordinatesOf(ctx, manager.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		recursive, err := g.AllSubordinatesRecursive(ctx, manager.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, report := range direct {
			if !contains(recursive, report.ID) {
				t.Fatalf("%s missing from recursive reports of %s", report.ID, manager.ID)
			}
		}
	}

	below, _ := g.AllSubordinatesRecursive(ctx, "ceo")
	got := ids(below)
	sort.Strings(got)
	want := []string{"cfo", "cto", "dev1", "dev2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRecursiveTerminatesOnCycles(t *testing.T) {
	mem := orgtest.NewMemory()
	mem.Add(org.Employee{ID: "a", ManagerID: "c", IsActive: true})
	mem.Add(org.Employee{ID: "b", ManagerID: "a", IsActive: true})
	mem.Add(org.Employee{ID: "c", ManagerID: "b", IsActive: true})
	mem.Add(org.Employee{ID: "self", ManagerID: "self", IsActive: true})
	g := org.NewGraph(mem)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "self"} {
		below, err := g.AllSubordinatesRecursive(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if contains(below, id) {
			t.Fatalf("%s found among its own reports: %v", id, ids(below))
		}
	}

	below, _ := g.AllSubordinatesRecursive(ctx, "a")
	if len(below) != 2 {
		t.Fatalf("expected b and c below a, got %v", ids(below))
	}
}

func TestPeersOf(t *testing.T) {
	mem := seedTree(t)
	g := org.NewGraph(mem)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{name: "root has no peers", id: "ceo", want: nil},
		{name: "siblings excluding self", id: "cto", want: []string{"cfo"}},
		{name: "inactive siblings skipped", id: "dev1", want: nil},
		{name: "inactive employee still sees active peers", id: "dev2", want: []string{"dev1"}},
		{name: "unknown employee", id: "ghost", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			peers, err := g.PeersOf(ctx, tc.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if peers == nil {
				t.Fatal("expected non-nil slice")
			}
			got := ids(peers)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestRootEmployeesHaveNoPeers(t *testing.T) {
	mem := orgtest.NewMemory()
	mem.Add(org.Employee{ID: "r1", IsActive: true})
	mem.Add(org.Employee{ID: "r2", IsActive: true})
	mem.Add(org.Employee{ID: "r3", IsActive: true})
	g := org.NewGraph(mem)

	for _, id := range []string{"r1", "r2", "r3"} {
		peers, err := g.PeersOf(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(peers) != 0 {
			t.Fatalf("expected no peers for root %s, got %v", id, ids(peers))
		}
	}
}

func TestEmployeesUnderHierarchy(t *testing.T) {
	mem := seedTree(t)
	g := org.NewGraph(mem)
	ctx := context.Background()

	all, err := g.EmployeesUnderHierarchy(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ids(all)
	want := []string{"ceo", "cto", "cfo", "dev1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected creation order %v, got %v", want, got)
		}
	}

	branch, err := g.EmployeesUnderHierarchy(ctx, "cto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(branch) != 3 || branch[0].ID != "cto" {
		t.Fatalf("expected cto first followed by its reports, got %v", ids(branch))
	}

	unknown, err := g.EmployeesUnderHierarchy(ctx, "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unknown) != 0 {
		t.Fatalf("expected empty result for unknown root, got %v", ids(unknown))
	}
}

func TestManagerCycles(t *testing.T) {
	mem := seedTree(t)
	g := org.NewGraph(mem)
	ctx := context.Background()

	cycles, err := g.ManagerCycles(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cycles) != 0 {
		t.Fatalf("expected clean hierarchy, got %v", cycles)
	}

	mem.SetManager("ceo", "dev1")
	cycles, err = g.ManagerCycles(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cycles) != 1 || len(cycles[0]) != 3 {
		t.Fatalf("expected one loop of three, got %v", cycles)
	}
}

func TestChart(t *testing.T) {
	mem := seedTree(t)
	g := org.NewGraph(mem)
	ctx := context.Background()

	roots, err := g.Chart(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roots) != 1 || roots[0].Employee.ID != "ceo" {
		t.Fatalf("expected single ceo root, got %+v", roots)
	}
	// cfo (Cash) sorts before cto (Tech).
	if len(roots[0].Reports) != 2 || roots[0].Reports[0].Employee.ID != "cfo" {
		t.Fatalf("unexpected first level %+v", roots[0].Reports)
	}
	cto := roots[0].Reports[1]
	if len(cto.Reports) != 1 || cto.Reports[0].Employee.ID != "dev1" {
		t.Fatalf("expected only active dev1 under cto, got %+v", cto.Reports)
	}

	sub, err := g.Chart(ctx, "cto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub) != 1 || sub[0].Employee.ID != "cto" {
		t.Fatalf("expected cto subtree, got %+v", sub)
	}
}
