package gradestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gradecalc/lib/gradebook"
	"gradecalc/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "gradestore",
		DbSchema: Schema,
	})
	defer cleanup()
	store := NewStore(res.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		runs, err := store.List(ctx, "017")
		require.NoError(t, err)
		require.Len(t, runs, 0)
	}

	start := time.Unix(1_700_000_000, 0)
	c, err := gradebook.Classify([]int{2, 3, 3, 4})
	require.NoError(t, err)

	first, err := store.Push(ctx, Run{
		Identifier: "017",
		Grades:     []int{2, 3, 3, 4},
		Mean:       c.Mean,
		Outcome:    c.Outcome.String(),
		Time:       start,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.Id)

	_, err = store.Push(ctx, Run{
		Identifier: "042",
		Outcome:    gradebook.NoGradesResult,
		Time:       start.Add(time.Minute),
	})
	require.NoError(t, err)

	second, err := store.Push(ctx, Run{
		Identifier: "017",
		Grades:     []int{5, 5},
		Mean:       5,
		Outcome:    gradebook.OutcomeNotPassing.String(),
		Time:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	runs, err := store.List(ctx, "017")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second.Id, runs[0].Id)
	require.Equal(t, []int{5, 5}, runs[0].Grades)
	require.Equal(t, first.Id, runs[1].Id)
	require.Equal(t, []int{2, 3, 3, 4}, runs[1].Grades)
	require.InDelta(t, 3.0, runs[1].Mean, 1e-9)
	require.Equal(t, "Good standing, no mandatory final test", runs[1].Outcome)
	require.Equal(t, start.Unix(), runs[1].Time.Unix())

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "042", all[1].Identifier)
	require.Equal(t, []int{}, all[1].Grades)
}

func TestOpenLocalFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.Push(ctx, Run{Identifier: "017", Grades: []int{1}, Mean: 1, Time: time.Now()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopening must not fail on the existing schema
	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(ctx, "017")
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
