package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type ProjectService interface {
	Create(ctx context.Context, userID int64, pc *transfer.ProjectCreation) (*models.Project, error)
	Get(ctx context.Context, userID, projectID int64) (*models.Project, error)
}

type projectService struct {
	pr repository.ProjectRepository
}

func NewProjectService(pr repository.ProjectRepository) ProjectService {
	return &projectService{pr: pr}
}

func (s *projectService) Create(ctx context.Context, userID int64, pc *transfer.ProjectCreation) (*models.Project, error) {
	if pc == nil {
		err := fmt.Errorf("%w: project data is nil", ErrValidation)
		slog.Error(err.Error())
		return nil, err
	}
	if strings.TrimSpace(pc.Niche) == "" {
		err := fmt.Errorf("%w: niche cannot be empty", ErrValidation)
		slog.Info(err.Error())
		return nil, err
	}
	if strings.TrimSpace(pc.Audience) == "" {
		err := fmt.Errorf("%w: audience cannot be empty", ErrValidation)
		slog.Info(err.Error())
		return nil, err
	}
	tone, err := models.ParseTone(pc.Tone)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	project := &models.Project{
		UserID:   userID,
		Niche:    strings.TrimSpace(pc.Niche),
		Audience: strings.TrimSpace(pc.Audience),
		Tone:     tone,
		Goals:    strings.TrimSpace(pc.Goals),
	}
	id, err := s.pr.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	project.ID = id
	return project, nil
}

// Get returns the project only if it belongs to userID; otherwise ErrNotFound.
func (s *projectService) Get(ctx context.Context, userID, projectID int64) (*models.Project, error) {
	if userID == 0 {
		err := errors.New("user is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.pr.CheckByUserID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = fmt.Errorf("%w: project %d", ErrNotFound, projectID)
		slog.Info(err.Error())
		return nil, err
	}

	project, err := s.pr.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error getting project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}
	return project, nil
}
