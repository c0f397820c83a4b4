package printjobsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type repoMock struct {
	inserted []*model.PrintJob
}

func (m *repoMock) Insert(ctx context.Context, j *model.PrintJob) (int64, error) {
	cp := *j
	cp.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, &cp)
	return cp.ID, nil
}

func (m *repoMock) ListByUser(ctx context.Context, userID int64) ([]model.PrintJob, error) {
	var out []model.PrintJob
	for _, j := range m.inserted {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *repoMock) ListAll(ctx context.Context) ([]model.PrintJob, error) {
	var out []model.PrintJob
	for _, j := range m.inserted {
		out = append(out, *j)
	}
	return out, nil
}

func TestCreate_TotalCostFrozen(t *testing.T) {
	m := &repoMock{}
	s := New(m)

	j, err := s.Create(context.Background(), 7, CreateJobReq{
		FileName:    "thesis.pdf",
		StoragePath: "/uploads/thesis.pdf",
		TotalPages:  10,
		CostPerPage: 2,
	})
	require.NoError(t, err)
	require.Equal(t, float64(20), j.TotalCost)
	require.Equal(t, model.PaymentPending, j.PaymentStatus)

	// the stored row carries the derived figure, not the formula
	require.Equal(t, float64(20), m.inserted[0].TotalCost)
}

func TestCreate_RoundsToPaise(t *testing.T) {
	s := New(&repoMock{})

	j, err := s.Create(context.Background(), 7, CreateJobReq{
		FileName:    "notes.pdf",
		StoragePath: "/uploads/notes.pdf",
		TotalPages:  7,
		CostPerPage: 0.33,
	})
	require.NoError(t, err)
	require.Equal(t, 2.31, j.TotalCost)
}

func TestCreate_Validation(t *testing.T) {
	s := New(&repoMock{})

	cases := []CreateJobReq{
		{StoragePath: "/p", TotalPages: 1, CostPerPage: 1},
		{FileName: "f", TotalPages: 1, CostPerPage: 1},
		{FileName: "f", StoragePath: "/p", TotalPages: 0, CostPerPage: 1},
		{FileName: "f", StoragePath: "/p", TotalPages: 1, CostPerPage: 0},
	}
	for _, req := range cases {
		_, err := s.Create(context.Background(), 7, req)
		require.Error(t, err)
	}
}

func TestListForUser(t *testing.T) {
	m := &repoMock{}
	s := New(m)

	_, err := s.Create(context.Background(), 7, CreateJobReq{FileName: "a", StoragePath: "/a", TotalPages: 1, CostPerPage: 1})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), 8, CreateJobReq{FileName: "b", StoragePath: "/b", TotalPages: 1, CostPerPage: 1})
	require.NoError(t, err)

	mine, err := s.ListForUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "a", mine[0].FileName)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}
