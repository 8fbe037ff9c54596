package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Create(ctx, tenantID, project.CreateRequest{
		Name:      "Website relaunch",
		StartDate: "2025-01-06",
	})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, project.StatusPlanning, proj.Status)
	require.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), proj.StartDate)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil)

	_, err := svc.Create(ctx, tenantID, project.CreateRequest{Name: "", StartDate: "2025-01-06"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, tenantID, project.CreateRequest{Name: "X", StartDate: "06.01.2025"})
	require.ErrorIs(t, err, project.ErrInvalidStartDate)
}

func TestParseDate(t *testing.T) {
	date, err := project.ParseDate("2025-01-03")
	require.NoError(t, err)
	require.Equal(t, "2025-01-03", project.FormatDate(date))
	require.Equal(t, time.UTC, date.Location())
}
