package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/healthtab/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInRepo_AppendAndListAll(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestLogEntry("2026-04-01", testutil.WithLevels(3, 2, 8), testutil.WithNotes("tired"))
	second := testutil.NewTestLogEntry("2026-04-02", testutil.WithReply(""))
	require.NoError(t, repo.Append(ctx, &first))
	require.NoError(t, repo.Append(ctx, &second))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
	assert.Equal(t, second, all[1])
}

func TestCheckInRepo_ListAll_Empty(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCheckInRepo_SameDayKeepsInsertOrder(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, notes := range []string{"morning", "noon", "evening"} {
		e := testutil.NewTestLogEntry("2026-04-01", testutil.WithNotes(notes))
		require.NoError(t, repo.Append(ctx, &e))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "morning", all[0].Notes)
	assert.Equal(t, "evening", all[2].Notes)
}

func TestCheckInRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, day := range []string{"2026-04-01", "2026-04-02", "2026-04-03"} {
		e := testutil.NewTestLogEntry(day)
		require.NoError(t, repo.Append(ctx, &e))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2026-04-03", recent[0].Date.String())
	assert.Equal(t, "2026-04-02", recent[1].Date.String())

	none, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCheckInRepo_Count(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestLogEntry("2026-04-01")
	require.NoError(t, repo.Append(ctx, &e))
	require.NoError(t, repo.Append(ctx, &e))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCheckInRepo_RejectsOutOfRangeLevels(t *testing.T) {
	repo := NewSQLiteCheckInRepo(testutil.NewTestDB(t))

	e := testutil.NewTestLogEntry("2026-04-01", testutil.WithLevels(11, 5, 5))
	assert.Error(t, repo.Append(context.Background(), &e))
}
