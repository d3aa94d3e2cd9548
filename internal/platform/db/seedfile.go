package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hrportal/internal/domain/org"
	"hrportal/internal/domain/performance"
)

// SeedFile is the layout of SEED_DATA_FILE.
type SeedFile struct {
	Departments []SeedDepartment `yaml:"departments"`
	Positions   []SeedPosition   `yaml:"positions"`
	Employees   []SeedEmployee   `yaml:"employees"`
	Templates   []SeedTemplate   `yaml:"templates"`
}

type SeedDepartment struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

type SeedPosition struct {
	Title      string `yaml:"title"`
	Department string `yaml:"department"`
	Level      int    `yaml:"level"`
}

type SeedEmployee struct {
	FirstName    string `yaml:"firstName"`
	LastName     string `yaml:"lastName"`
	Email        string `yaml:"email"`
	NationalID   string `yaml:"nationalId"`
	Department   string `yaml:"department"`
	Position     string `yaml:"position"`
	ManagerEmail string `yaml:"managerEmail"`
	HireDate     string `yaml:"hireDate"`
}

type SeedTemplate struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Categories  []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	Name     string          `yaml:"name"`
	Weight   float64         `yaml:"weight"`
	Criteria []SeedCriterion `yaml:"criteria"`
}

type SeedCriterion struct {
	Title     string `yaml:"title"`
	MinRating int    `yaml:"minRating"`
	MaxRating int    `yaml:"maxRating"`
}

func (t SeedTemplate) template() performance.Template {
	out := performance.Template{
		Title:       t.Title,
		Description: t.Description,
		Categories:  make([]performance.Category, 0, len(t.Categories)),
		IsActive:    true,
	}
	for _, c := range t.Categories {
		category := performance.Category{Name: c.Name, Weight: c.Weight, Criteria: make([]performance.Criterion, 0, len(c.Criteria))}
		for _, cr := range c.Criteria {
			category.Criteria = append(category.Criteria, performance.Criterion{Title: cr.Title, MinRating: cr.MinRating, MaxRating: cr.MaxRating})
		}
		out.Categories = append(out.Categories, category)
	}
	return out
}

type SeedFailure struct {
	Kind  string `json:"kind"`
	Key   string `json:"key"`
	Error string `json:"error"`
}

// SeedReport counts created records per kind and lists every record that
// could not be written.
type SeedReport struct {
	Created  map[string]int
	Failures []SeedFailure
}

func (r *SeedReport) fail(kind, key string, err error) {
	slog.Warn("seed record failed", "kind", kind, "key", key, "err", err)
	r.Failures = append(r.Failures, SeedFailure{Kind: kind, Key: key, Error: err.Error()})
}

// OrgWriter is the subset of the org service the bulk seed writes through.
type OrgWriter interface {
	CreateDepartment(ctx context.Context, dep org.Department) (org.Department, error)
	CreatePosition(ctx context.Context, pos org.Position) (org.Position, error)
	CreateEmployee(ctx context.Context, emp org.Employee) (org.Employee, error)
	UpdateEmployee(ctx context.Context, emp org.Employee) (org.Employee, error)
}

type TemplateWriter interface {
	CreateTemplate(ctx context.Context, t performance.Template) (performance.Template, error)
}

func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("read seed file: %w", err)
	}
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return file, nil
}

// SeedData writes every record of file independently. A failing record is
// added to the report and the batch continues.
func SeedData(ctx context.Context, file SeedFile, orgs OrgWriter, templates TemplateWriter) SeedReport {
	report := SeedReport{Created: map[string]int{}}

	// Departments are created in passes so a child may precede its parent.
	departments := map[string]string{}
	pendingDeps := file.Departments
	for len(pendingDeps) > 0 {
		var deferred []SeedDepartment
		for _, d := range pendingDeps {
			dep := org.Department{Name: d.Name}
			if d.Parent != "" {
				parentID, ok := departments[d.Parent]
				if !ok {
					deferred = append(deferred, d)
					continue
				}
				dep.ParentID = parentID
			}
			created, err := orgs.CreateDepartment(ctx, dep)
			if err != nil {
				report.fail("department", d.Name, err)
				continue
			}
			departments[d.Name] = created.ID
			report.Created["department"]++
		}
		if len(deferred) == len(pendingDeps) {
			for _, d := range deferred {
				report.fail("department", d.Name, fmt.Errorf("parent department %q not seeded", d.Parent))
			}
			break
		}
		pendingDeps = deferred
	}

	positions := map[string]string{}
	for _, p := range file.Positions {
		pos := org.Position{Title: p.Title, Level: p.Level, IsActive: true}
		if p.Department != "" {
			depID, ok := departments[p.Department]
			if !ok {
				report.fail("position", p.Title, fmt.Errorf("department %q not seeded", p.Department))
				continue
			}
			pos.DepartmentID = depID
		}
		created, err := orgs.CreatePosition(ctx, pos)
		if err != nil {
			report.fail("position", p.Title, err)
			continue
		}
		positions[p.Title] = created.ID
		report.Created["position"]++
	}

	// Managers are linked in a second pass so the file order does not matter.
	employees := map[string]org.Employee{}
	for _, e := range file.Employees {
		key := strings.ToLower(strings.TrimSpace(e.Email))
		var hireDate *time.Time
		if e.HireDate != "" {
			parsed, err := time.Parse(time.DateOnly, e.HireDate)
			if err != nil {
				report.fail("employee", key, fmt.Errorf("hireDate: %w", err))
				continue
			}
			hireDate = &parsed
		}
		emp := org.Employee{
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Email:        key,
			NationalID:   e.NationalID,
			DepartmentID: departments[e.Department],
			PositionID:   positions[e.Position],
			HireDate:     hireDate,
			IsActive:     true,
		}
		created, err := orgs.CreateEmployee(ctx, emp)
		if err != nil {
			report.fail("employee", key, err)
			continue
		}
		employees[key] = created
		report.Created["employee"]++
	}
	for _, e := range file.Employees {
		if e.ManagerEmail == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(e.Email))
		emp, ok := employees[key]
		if !ok {
			continue
		}
		manager, ok := employees[strings.ToLower(strings.TrimSpace(e.ManagerEmail))]
		if !ok {
			report.fail("employee", key, fmt.Errorf("manager %q not seeded", e.ManagerEmail))
			continue
		}
		emp.ManagerID = manager.ID
		if _, err := orgs.UpdateEmployee(ctx, emp); err != nil {
			report.fail("employee", key, err)
		}
	}

	for _, t := range file.Templates {
		created, err := templates.CreateTemplate(ctx, t.template())
		if err != nil {
			report.fail("template", t.Title, err)
			continue
		}
		report.Created["template"]++
		slog.Debug("template seeded", "templateId", created.ID)
	}

	slog.Info("bulk seed finished",
		"departments", report.Created["department"],
		"positions", report.Created["position"],
		"employees", report.Created["employee"],
		"templates", report.Created["template"],
		"failures", len(report.Failures))
	return report
}
