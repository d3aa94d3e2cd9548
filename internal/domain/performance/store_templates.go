package performance

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/listing"
	"hrportal/internal/platform/pgerr"
)

const templateColumns = `id::text, title, description, version, categories, is_active, created_at, updated_at`

var templateSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"version":   "version",
}

var templateSearchFields = []string{"title", "description"}

func scanTemplate(row pgx.Row) (Template, error) {
	var t Template
	var raw []byte
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Version, &raw, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Template{}, err
	}
	categories, err := decodeCategories(raw)
	if err != nil {
		return Template{}, err
	}
	t.Categories = categories
	return t, nil
}

func (s *Store) GetTemplate(ctx context.Context, templateID string) (Template, error) {
	t, err := scanTemplate(s.DB.QueryRow(ctx, "SELECT "+templateColumns+" FROM evaluation_templates WHERE id = $1", templateID))
	if pgerr.IsNoRows(err) {
		return Template{}, ErrTemplateNotFound
	}
	return t, err
}

func (s *Store) ListTemplates(ctx context.Context, params listing.Params) ([]Template, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if params.Search != "" {
		args = append(args, params.Search)
		where += params.SearchClause(templateSearchFields, len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluation_templates"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + templateColumns + " FROM evaluation_templates" + where + params.OrderBy(templateSortColumns) + params.LimitClause(len(args)+1)
	args = append(args, params.Normalize().Limit, params.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (s *Store) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	raw, err := encodeCategories(t.Categories)
	if err != nil {
		return Template{}, err
	}
	return scanTemplate(s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_templates (title, description, version, categories, is_active)
    VALUES ($1,$2,1,$3,$4)
    RETURNING `+templateColumns,
		t.Title, t.Description, raw, t.IsActive))
}

func (s *Store) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	raw, err := encodeCategories(t.Categories)
	if err != nil {
		return Template{}, err
	}
	updated, err := scanTemplate(s.DB.QueryRow(ctx, `
    UPDATE evaluation_templates
    SET title = $2, description = $3, categories = $4, is_active = $5,
        version = version + 1, updated_at = now()
    WHERE id = $1
    RETURNING `+templateColumns,
		t.ID, t.Title, t.Description, raw, t.IsActive))
	if pgerr.IsNoRows(err) {
		return Template{}, ErrTemplateNotFound
	}
	return updated, err
}

func (s *Store) DeleteTemplate(ctx context.Context, templateID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_templates WHERE id = $1", templateID)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrTemplateInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *Store) TemplateInUse(ctx context.Context, templateID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM evaluation_cycles WHERE template_id = $1", templateID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
