package printjobsvc

import (
	"context"
	"errors"
	"math"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type CreateJobReq struct {
	FileName    string  `json:"file_name" validate:"required"`
	StoragePath string  `json:"storage_path" validate:"required"`
	TotalPages  int64   `json:"total_pages" validate:"required,gt=0"`
	CostPerPage float64 `json:"cost_per_page" validate:"required,gt=0"`
}

type Repo interface {
	Insert(ctx context.Context, j *model.PrintJob) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]model.PrintJob, error)
	ListAll(ctx context.Context) ([]model.PrintJob, error)
}

type Service interface {
	// Create freezes total_cost at insert time; the figure never gets
	// recomputed even if per-page pricing changes later.
	Create(ctx context.Context, userID int64, req CreateJobReq) (*model.PrintJob, error)
	ListForUser(ctx context.Context, userID int64) ([]model.PrintJob, error)
	ListAll(ctx context.Context) ([]model.PrintJob, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, userID int64, req CreateJobReq) (*model.PrintJob, error) {
	if req.FileName == "" || req.StoragePath == "" || req.TotalPages <= 0 || req.CostPerPage <= 0 {
		return nil, errors.New("invalid payload")
	}

	total := float64(req.TotalPages) * req.CostPerPage
	total = math.Round(total*100) / 100

	j := &model.PrintJob{
		UserID:        userID,
		FileName:      req.FileName,
		StoragePath:   req.StoragePath,
		TotalPages:    req.TotalPages,
		CostPerPage:   req.CostPerPage,
		TotalCost:     total,
		PaymentStatus: model.PaymentPending,
	}
	id, err := s.r.Insert(ctx, j)
	if err != nil {
		return nil, err
	}
	j.ID = id
	return j, nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]model.PrintJob, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]model.PrintJob, error) {
	return s.r.ListAll(ctx)
}
