package run_test

import (
	"context"
	"testing"

	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/repository"
	"github.com/rkulagin/ganttcal/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunService_Begin(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.RunRepository{}
	repo.On("GetActive", ctx, tenantID, "p1").Return((*run.Run)(nil), repository.ErrNotFound)
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)

	svc := run.NewService(repo, nil)
	r, err := svc.Begin(ctx, tenantID, "p1")
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)
	require.Equal(t, run.StatusRunning, r.Status)
}

func TestRunService_BeginRejectsConcurrent(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.RunRepository{}
	repo.On("GetActive", ctx, tenantID, "p1").Return(&run.Run{ID: "r1", ProjectID: "p1", Status: run.StatusRunning}, nil)

	svc := run.NewService(repo, nil)
	_, err := svc.Begin(ctx, tenantID, "p1")
	require.ErrorIs(t, err, run.ErrRunInProgress)
}

func TestRunService_FinishValidatesStatus(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RunRepository{}
	svc := run.NewService(repo, nil)
	err := svc.Finish(ctx, "tenant1", "r1", run.StatusRunning, "")
	require.ErrorIs(t, err, run.ErrInvalidInput)
}
