package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio_server/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProjectRepository owns the project rows and the project -> image ownership
// relation. Every multi-statement operation runs inside a single
// transaction: the store is never observable in a partially-applied state.
type ProjectRepository interface {
	FindAll(ctx context.Context) ([]model.Project, error)
	FindImage(ctx context.Context, imageID int64) ([]byte, error)
	Create(ctx context.Context, project *model.Project, images [][]byte) error
	Update(ctx context.Context, id int64, name, description string, price float64, deletedImageIDs []int64, newImages [][]byte) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

// FindAll retrieves every project with its owned image ids, both in
// ascending id order. Image bytes are not loaded here.
func (r *projectRepository) FindAll(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, price, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	index := map[int64]int{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		p.ImageIDs = []int64{}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	imgRows, err := r.db.Query(ctx, `SELECT id, project_id FROM project_images ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project images: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var imageID, projectID int64
		if err := imgRows.Scan(&imageID, &projectID); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		if i, ok := index[projectID]; ok {
			projects[i].ImageIDs = append(projects[i].ImageIDs, imageID)
		}
	}
	if err = imgRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}
	return projects, nil
}

// FindImage retrieves the raw bytes of one image, or (nil, nil) if the id is
// unknown.
func (r *projectRepository) FindImage(ctx context.Context, imageID int64) ([]byte, error) {
	var content []byte
	err := r.db.QueryRow(ctx, `SELECT image FROM project_images WHERE id = $1`, imageID).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find image: %w", err)
	}
	return content, nil
}

// Create inserts the project row and all of its images as one atomic unit.
// If any image insert fails the project row does not persist either. On
// success the project's ID and ImageIDs are filled in.
func (r *projectRepository) Create(ctx context.Context, p *model.Project, images [][]byte) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		sql := `INSERT INTO projects (name, description, price) VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, sql, p.Name, p.Description, p.Price).Scan(&p.ID, &p.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}

		p.ImageIDs = make([]int64, 0, len(images))
		for _, img := range images {
			var imageID int64
			err := tx.QueryRow(ctx, `INSERT INTO project_images (project_id, image) VALUES ($1, $2) RETURNING id`, p.ID, img).Scan(&imageID)
			if err != nil {
				return fmt.Errorf("failed to insert project image: %w", err)
			}
			p.ImageIDs = append(p.ImageIDs, imageID)
		}
		return nil
	})
}

// Update applies the scalar-field update, the owned-image deletions and the
// new-image inserts as one transaction. Deletion of an image owned by a
// different project is silently ignored (the WHERE clause pins the owner).
// Returns a pgx.ErrNoRows-wrapped error if the project does not exist.
func (r *projectRepository) Update(ctx context.Context, id int64, name, description string, price float64, deletedImageIDs []int64, newImages [][]byte) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var updatedID int64
		sql := `UPDATE projects SET name = $1, description = $2, price = $3 WHERE id = $4 RETURNING id`
		if err := tx.QueryRow(ctx, sql, name, description, price, id).Scan(&updatedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("project %d not found for update: %w", id, pgx.ErrNoRows)
			}
			return fmt.Errorf("failed to update project: %w", err)
		}

		for _, imageID := range deletedImageIDs {
			_, err := tx.Exec(ctx, `DELETE FROM project_images WHERE id = $1 AND project_id = $2`, imageID, id)
			if err != nil {
				return fmt.Errorf("failed to delete project image: %w", err)
			}
		}

		for _, img := range newImages {
			_, err := tx.Exec(ctx, `INSERT INTO project_images (project_id, image) VALUES ($1, $2)`, id, img)
			if err != nil {
				return fmt.Errorf("failed to insert project image: %w", err)
			}
		}
		return nil
	})
}

// Delete removes all child images and then the project row as one atomic
// unit. Returns a pgx.ErrNoRows-wrapped error if the project does not exist.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM project_images WHERE project_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete project images: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("project %d not found for deletion: %w", id, pgx.ErrNoRows)
		}
		return nil
	})
}
