package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"portfolio_server/internal/model"
	"portfolio_server/internal/repository"

	"github.com/jackc/pgx/v5"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrNameRequired     = errors.New("project name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrTooManyImages    = errors.New("too many images in one upload")
	ErrFileSizeExceeded = errors.New("file size exceeds limit")
)

const (
	MaxImageSize       = 5 * 1024 * 1024 // 5MB per file
	MaxImagesPerUpload = 5
)

// ProjectService defines operations on the project catalog
type ProjectService interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetImage(ctx context.Context, imageID int64) ([]byte, error)
	CreateProject(ctx context.Context, req model.CreateProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, projectID int64, req model.UpdateProjectRequest) error
	DeleteProject(ctx context.Context, projectID int64) error
}

type projectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects from repo: %w", err)
	}
	return projects, nil
}

func (s *projectService) GetImage(ctx context.Context, imageID int64) ([]byte, error) {
	content, err := s.repo.FindImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find image: %w", err)
	}
	if content == nil {
		return nil, ErrImageNotFound
	}
	return content, nil
}

func (s *projectService) CreateProject(ctx context.Context, req model.CreateProjectRequest) (*model.Project, error) {
	if err := validateProjectFields(req.Name, req.Price); err != nil {
		return nil, err
	}

	images, err := readImages(req.Images)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := s.repo.Create(ctx, project, images); err != nil {
		return nil, fmt.Errorf("failed to create project in repo: %w", err)
	}
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID int64, req model.UpdateProjectRequest) error {
	if err := validateProjectFields(req.Name, req.Price); err != nil {
		return err
	}

	newImages, err := readImages(req.NewImages)
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, projectID, req.Name, req.Description, req.Price, req.DeletedImageIDs, newImages)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project in repo: %w", err)
	}
	return nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID int64) error {
	err := s.repo.Delete(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project in repo: %w", err)
	}
	return nil
}

func validateProjectFields(name string, price float64) error {
	if name == "" {
		return ErrNameRequired
	}
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// readImages validates the uploaded parts and loads their bytes. Validation
// happens up front so no database work starts for a rejected upload.
func readImages(files []*multipart.FileHeader) ([][]byte, error) {
	if len(files) > MaxImagesPerUpload {
		return nil, ErrTooManyImages
	}
	for _, fh := range files {
		if fh.Size > MaxImageSize {
			return nil, ErrFileSizeExceeded
		}
	}

	images := make([][]byte, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		images = append(images, content)
	}
	return images, nil
}
