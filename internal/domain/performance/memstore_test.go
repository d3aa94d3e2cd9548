package performance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"hrportal/internal/platform/listing"
)

// memStore is an in-memory StoreAPI. Hooks let tests inject failures and
// interleavings into the publish path.
type memStore struct {
	mu          sync.Mutex
	seq         int
	clock       time.Time
	templates   map[string]Template
	cycles      map[string]Cycle
	evaluations map[string]Evaluation
	goals       map[string]Goal

	createCalls   int
	failCreateAt  int
	beforeClaim   func()
	claimAttempts int
}

var errInjected = errors.New("injected write failure")

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		templates:   map[string]Template{},
		cycles:      map[string]Cycle{},
		evaluations: map[string]Evaluation{},
		goals:       map[string]Goal{},
	}
}

func (m *memStore) next(prefix string) (string, time.Time) {
	m.seq++
	m.clock = m.clock.Add(time.Second)
	return fmt.Sprintf("%s-%d", prefix, m.seq), m.clock
}

func (m *memStore) GetTemplate(_ context.Context, id string) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	t.Categories = CloneCategories(t.Categories)
	return t, nil
}

func (m *memStore) ListTemplates(_ context.Context, params listing.Params) ([]Template, int, error) {
	m.mu.Lock()
	out := []Template{}
	for _, t := range m.templates {
		out = append(out, t)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	page, meta := listing.Page(out, params)
	return page, meta.Total, nil
}

func (m *memStore) CreateTemplate(_ context.Context, t Template) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID, t.CreatedAt = m.next("tpl")
	t.UpdatedAt = t.CreatedAt
	t.Version = 1
	t.Categories = CloneCategories(t.Categories)
	m.templates[t.ID] = t
	return t, nil
}

func (m *memStore) UpdateTemplate(_ context.Context, t Template) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.templates[t.ID]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	t.Version = existing.Version + 1
	t.CreatedAt = existing.CreatedAt
	t.Categories = CloneCategories(t.Categories)
	m.templates[t.ID] = t
	return t, nil
}

func (m *memStore) DeleteTemplate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.templates, id)
	return nil
}

func (m *memStore) TemplateInUse(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cycles {
		if c.TemplateID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetCycle(_ context.Context, id string) (Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return Cycle{}, ErrCycleNotFound
	}
	return c, nil
}

func (m *memStore) ListCycles(_ context.Context, params listing.Params, filter CycleFilter) ([]Cycle, int, error) {
	m.mu.Lock()
	out := []Cycle{}
	for _, c := range m.cycles {
		if filter.Status == "" || c.Status == filter.Status {
			out = append(out, c)
		}
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	page, meta := listing.Page(out, params)
	return page, meta.Total, nil
}

func (m *memStore) CreateCycle(_ context.Context, c Cycle) (Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID, c.CreatedAt = m.next("cycle")
	c.UpdatedAt = c.CreatedAt
	m.cycles[c.ID] = c
	return c, nil
}

func (m *memStore) UpdateCycle(_ context.Context, c Cycle) (Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.cycles[c.ID]
	if !ok {
		return Cycle{}, ErrCycleNotFound
	}
	c.Status = existing.Status
	c.CreatedAt = existing.CreatedAt
	m.cycles[c.ID] = c
	return c, nil
}

func (m *memStore) DeleteCycle(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cycles[id]; !ok {
		return ErrCycleNotFound
	}
	delete(m.cycles, id)
	return nil
}

func (m *memStore) ClaimForPublish(_ context.Context, id, publishedBy string, at time.Time) (bool, error) {
	if m.beforeClaim != nil {
		m.beforeClaim()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimAttempts++
	c, ok := m.cycles[id]
	if !ok || c.Status != CycleStatusDraft {
		return false, nil
	}
	c.Status = CycleStatusPublished
	c.PublishedAt = &at
	c.PublishedByID = publishedBy
	m.cycles[id] = c
	return true, nil
}

func (m *memStore) ResetToDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return ErrCycleNotFound
	}
	c.Status = CycleStatusDraft
	c.PublishedAt = nil
	c.PublishedByID = ""
	m.cycles[id] = c
	return nil
}

func (m *memStore) TransitionStatus(_ context.Context, id, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	m.cycles[id] = c
	return true, nil
}

func (m *memStore) GetEvaluation(_ context.Context, id string) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evaluations[id]
	if !ok {
		return Evaluation{}, ErrEvaluationNotFound
	}
	e.Categories = CloneCategories(e.Categories)
	return e, nil
}

func (m *memStore) ListEvaluations(_ context.Context, params listing.Params, filter EvaluationFilter) ([]Evaluation, int, error) {
	m.mu.Lock()
	out := []Evaluation{}
	for _, e := range m.evaluations {
		if filter.CycleID != "" && e.CycleID != filter.CycleID {
			continue
		}
		if filter.EmployeeID != "" && e.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.EvaluatorID != "" && e.EvaluatorID != filter.EvaluatorID {
			continue
		}
		out = append(out, e)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	page, meta := listing.Page(out, params)
	return page, meta.Total, nil
}

func (m *memStore) ListEvaluationsByCycle(ctx context.Context, cycleID string) ([]Evaluation, error) {
	m.mu.Lock()
	out := []Evaluation{}
	for _, e := range m.evaluations {
		if e.CycleID == cycleID {
			out = append(out, e)
		}
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CreateEvaluation(_ context.Context, e Evaluation) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.failCreateAt > 0 && m.createCalls == m.failCreateAt {
		return Evaluation{}, errInjected
	}
	e.ID, e.CreatedAt = m.next("eval")
	e.UpdatedAt = e.CreatedAt
	m.evaluations[e.ID] = e
	return e, nil
}

func (m *memStore) UpdateEvaluation(_ context.Context, e Evaluation) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evaluations[e.ID]; !ok {
		return Evaluation{}, ErrEvaluationNotFound
	}
	m.evaluations[e.ID] = e
	return e, nil
}

func (m *memStore) DeleteEvaluation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evaluations[id]; !ok {
		return ErrEvaluationNotFound
	}
	delete(m.evaluations, id)
	return nil
}

func (m *memStore) DeleteByCycle(_ context.Context, cycleID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.evaluations {
		if e.CycleID == cycleID {
			delete(m.evaluations, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memStore) EvaluationExists(_ context.Context, employeeID, evaluatorID string, evaluationType EvaluationType, period string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.evaluations {
		if e.EmployeeID == employeeID && e.EvaluatorID == evaluatorID && e.EvaluationType == evaluationType && e.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetGoal(_ context.Context, id string) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g, nil
}

func (m *memStore) ListGoals(_ context.Context, params listing.Params, filter GoalFilter) ([]Goal, int, error) {
	m.mu.Lock()
	out := []Goal{}
	for _, g := range m.goals {
		if filter.EmployeeID == "" || g.EmployeeID == filter.EmployeeID {
			out = append(out, g)
		}
	}
	m.mu.Unlock()
	page, meta := listing.Page(out, params)
	return page, meta.Total, nil
}

func (m *memStore) CreateGoal(_ context.Context, g Goal) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID, g.CreatedAt = m.next("goal")
	m.goals[g.ID] = g
	return g, nil
}

func (m *memStore) UpdateGoal(_ context.Context, g Goal) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return Goal{}, ErrGoalNotFound
	}
	m.goals[g.ID] = g
	return g, nil
}

func (m *memStore) DeleteGoal(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.goals, id)
	return nil
}

func (m *memStore) countByCycle(cycleID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.evaluations {
		if e.CycleID == cycleID {
			n++
		}
	}
	return n
}

var _ StoreAPI = (*memStore)(nil)
