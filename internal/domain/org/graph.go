package org

import (
	"context"
	"errors"
	"sort"
)

// Graph answers reporting-line questions over a Directory. It never mutates
// the directory. Unknown employees yield empty results, not errors.
type Graph struct {
	dir Directory
}

func NewGraph(dir Directory) *Graph {
	return &Graph{dir: dir}
}

// SubordinatesOf returns the direct reports of employeeID.
func (g *Graph) SubordinatesOf(ctx context.Context, employeeID string) ([]Employee, error) {
	if employeeID == "" {
		return []Employee{}, nil
	}
	reports, err := g.dir.ListByManager(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []Employee{}
	}
	return reports, nil
}

// AllSubordinatesRecursive returns every transitive report of employeeID.
// The visited set is seeded with employeeID, so the result never contains
// the employee itself even when the manager links form a loop.
func (g *Graph) AllSubordinatesRecursive(ctx context.Context, employeeID string) ([]Employee, error) {
	out := []Employee{}
	if employeeID == "" {
		return out, nil
	}
	visited := map[string]struct{}{employeeID: {}}
	queue := []string{employeeID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		reports, err := g.SubordinatesOf(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, report := range reports {
			if _, seen := visited[report.ID]; seen {
				continue
			}
			visited[report.ID] = struct{}{}
			out = append(out, report)
			queue = append(queue, report.ID)
		}
	}
	return out, nil
}

// PeersOf returns the active employees sharing employeeID's manager.
func (g *Graph) PeersOf(ctx context.Context, employeeID string) ([]Employee, error) {
	emp, ok, err := g.lookup(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok || !emp.HasManager() {
		return []Employee{}, nil
	}
	return g.peersUnder(ctx, emp)
}

func (g *Graph) peersUnder(ctx context.Context, emp Employee) ([]Employee, error) {
	siblings, err := g.dir.ListByManager(ctx, emp.ManagerID)
	if err != nil {
		return nil, err
	}
	peers := make([]Employee, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == emp.ID || !sibling.IsActive {
			continue
		}
		peers = append(peers, sibling)
	}
	return peers, nil
}

// EmployeesUnderHierarchy returns rootID followed by all of its transitive
// reports. With an empty rootID it returns every active employee ordered by
// creation time.
func (g *Graph) EmployeesUnderHierarchy(ctx context.Context, rootID string) ([]Employee, error) {
	if rootID == "" {
		active, err := g.dir.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		})
		return active, nil
	}

	root, ok, err := g.lookup(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Employee{}, nil
	}
	below, err := g.AllSubordinatesRecursive(ctx, rootID)
	if err != nil {
		return nil, err
	}
	return append([]Employee{root}, below...), nil
}

// ManagerCycles reports every loop in the manager links. Each loop is listed
// once, starting from the employee where the walk first re-entered it.
func (g *Graph) ManagerCycles(ctx context.Context) ([][]string, error) {
	all, err := g.dir.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	managerOf := make(map[string]string, len(all))
	ids := make([]string, 0, len(all))
	for _, emp := range all {
		managerOf[emp.ID] = emp.ManagerID
		ids = append(ids, emp.ID)
	}
	sort.Strings(ids)

	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[string]int, len(all))
	cycles := [][]string{}
	for _, start := range ids {
		if state[start] != unvisited {
			continue
		}
		var path []string
		position := map[string]int{}
		current := start
		for current != "" {
			if _, known := managerOf[current]; !known {
				break
			}
			if state[current] == done {
				break
			}
			if state[current] == onPath {
				loop := append([]string(nil), path[position[current]:]...)
				cycles = append(cycles, loop)
				break
			}
			state[current] = onPath
			position[current] = len(path)
			path = append(path, current)
			current = managerOf[current]
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return cycles, nil
}

// Chart builds the reporting tree of active employees. With rootID set the
// tree starts there; otherwise every active employee without an active
// manager becomes a root.
func (g *Graph) Chart(ctx context.Context, rootID string) ([]ChartNode, error) {
	active, err := g.dir.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].LastName == active[j].LastName {
			return active[i].FirstName < active[j].FirstName
		}
		return active[i].LastName < active[j].LastName
	})

	byID := make(map[string]Employee, len(active))
	for _, emp := range active {
		byID[emp.ID] = emp
	}
	children := map[string][]Employee{}
	var roots []Employee
	for _, emp := range active {
		if _, managerActive := byID[emp.ManagerID]; emp.HasManager() && managerActive {
			children[emp.ManagerID] = append(children[emp.ManagerID], emp)
			continue
		}
		roots = append(roots, emp)
	}
	if rootID != "" {
		root, ok := byID[rootID]
		if !ok {
			return []ChartNode{}, nil
		}
		roots = []Employee{root}
	}

	visited := map[string]struct{}{}
	var build func(emp Employee) ChartNode
	build = func(emp Employee) ChartNode {
		visited[emp.ID] = struct{}{}
		node := ChartNode{Employee: emp, Reports: []ChartNode{}}
		for _, child := range children[emp.ID] {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			node.Reports = append(node.Reports, build(child))
		}
		return node
	}

	out := make([]ChartNode, 0, len(roots))
	for _, root := range roots {
		if _, seen := visited[root.ID]; seen {
			continue
		}
		out = append(out, build(root))
	}
	return out, nil
}

func (g *Graph) lookup(ctx context.Context, employeeID string) (Employee, bool, error) {
	if employeeID == "" {
		return Employee{}, false, nil
	}
	emp, err := g.dir.GetEmployee(ctx, employeeID)
	if errors.Is(err, ErrEmployeeNotFound) {
		return Employee{}, false, nil
	}
	if err != nil {
		return Employee{}, false, err
	}
	return emp, true, nil
}
