package enquiries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

var ErrNotFound = fmt.Errorf("enquiries: %w", httpx.ErrNotFound)

// Repository persists enquiries.
type Repository interface {
	Get(ctx context.Context, id string) (*Enquiry, error)
	List(ctx context.Context) ([]Enquiry, error)
	Create(ctx context.Context, e Enquiry) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error) {
	e := Enquiry{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Service:       req.Service,
		EventType:     req.EventType,
		Location:      req.Location,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Guests:        req.Guests,
		Notes:         req.Notes,
		Status:        StatusNew,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}
	return &e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Enquiry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Enquiry, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Enquiry, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update enquiry status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// MarkQuoted records that a quote was produced from this enquiry.
func (s *Service) MarkQuoted(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusQuoted)
}

// MarkClosed records that the enquiry's quote was accepted.
func (s *Service) MarkClosed(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusClosed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
