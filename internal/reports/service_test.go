package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	projects, archived int64
	taskCounts         map[string]int64
	active, pending    int64
	err                error
}

func (f *fakeReportRepo) ProjectCounts(ctx context.Context) (int64, int64, error) {
	return f.projects, f.archived, f.err
}

func (f *fakeReportRepo) TaskCountsByStatus(ctx context.Context) (map[string]int64, error) {
	return f.taskCounts, f.err
}

func (f *fakeReportRepo) MemberCounts(ctx context.Context) (int64, int64, error) {
	return f.active, f.pending, f.err
}

func TestSummaryAggregates(t *testing.T) {
	svc := NewService(&fakeReportRepo{
		projects: 5,
		archived: 2,
		taskCounts: map[string]int64{
			"todo":        4,
			"in_progress": 3,
			"done":        10,
		},
		active:  12,
		pending: 2,
	})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.TotalProjects)
	assert.Equal(t, int64(3), summary.ActiveProjects)
	assert.Equal(t, int64(17), summary.TotalTasks)
	assert.Equal(t, int64(10), summary.TasksByStatus["done"])
	assert.Equal(t, int64(12), summary.ActiveMembers)
}

func TestSummaryEmptyDatabase(t *testing.T) {
	svc := NewService(&fakeReportRepo{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalTasks)
	assert.NotNil(t, summary.TasksByStatus)
}

func TestSummaryPropagatesErrors(t *testing.T) {
	svc := NewService(&fakeReportRepo{err: errors.New("boom")})

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
