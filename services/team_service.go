package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
	"github.com/aharonidan/bopdial/storage"
)

type TeamService interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UploadFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) Create(ctx context.Context, team *models.Team) error {
	if team.Name == "" {
		return ErrTeamNameRequired
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	s.populateFlagURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.populateFlagURL(team)
	}
	return teams, nil
}

func (s *teamService) UploadFlag(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := storage.TeamFlagKey(teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flag for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store flag key for team %d: %w", teamID, err)
	}

	team.FlagKey = &result.Key
	s.populateFlagURL(team)
	return team, nil
}

func (s *teamService) populateFlagURL(team *models.Team) {
	if team == nil || team.FlagKey == nil || *team.FlagKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.FlagKey); url != "" {
		team.FlagURL = &url
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/svg+xml":
		return ".svg", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported flag content type %q", contentType)
	}
}
