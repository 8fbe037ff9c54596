package task_test

import (
	"context"
	"testing"

	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.TaskRepository{}
	svc := task.NewService(repo, nil)

	_, err := svc.Create(ctx, tenantID, task.CreateRequest{ProjectID: "p1", Name: "", Duration: 1})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, tenantID, task.CreateRequest{ProjectID: "p1", Name: "design", Duration: 0})
	require.ErrorIs(t, err, task.ErrInvalidDuration)

	_, err = svc.Create(ctx, tenantID, task.CreateRequest{ID: 5, ProjectID: "p1", Name: "design", Duration: 2, Predecessors: []int64{5}})
	require.ErrorIs(t, err, task.ErrSelfDependency)
}

func TestTaskService_CreateRejectsNonGroupParent(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	parentID := int64(1)
	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, tenantID, parentID).Return(&task.Task{ID: 1, ProjectID: "p1", IsGroup: false}, nil)

	svc := task.NewService(repo, nil)
	_, err := svc.Create(ctx, tenantID, task.CreateRequest{
		ProjectID: "p1",
		Name:      "child",
		Duration:  2,
		ParentID:  &parentID,
	})
	require.ErrorIs(t, err, task.ErrParentNotGroup)
}

func TestTaskService_CreateDedupesPredecessors(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.TaskRepository{}
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)

	svc := task.NewService(repo, nil)
	created, err := svc.Create(ctx, tenantID, task.CreateRequest{
		ProjectID:    "p1",
		Name:         "implement",
		Duration:     3,
		Predecessors: []int64{2, 2, 4},
	})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 4}, created.Predecessors)
}

func TestTaskService_AddDependencySelfReference(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	svc := task.NewService(repo, nil)
	err := svc.AddDependency(ctx, "tenant1", task.DependencyEdge{TaskID: 3, PredecessorID: 3})
	require.ErrorIs(t, err, task.ErrSelfDependency)
}
