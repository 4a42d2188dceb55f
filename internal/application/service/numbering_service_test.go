package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberingNext_DefaultPrefix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// No active year: the calendar year stands in for "AY".
	no, err := env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-R-0001$`, no)

	no, err = env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-R-0002$`, no)
}

func TestNumberingNext_ActiveYearPrefix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.ActivateYear(ctx, "2025-26", nil, nil, "test")
	require.NoError(t, err)

	no, err := env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "202526-R-0001", no)
}

func TestNumberingNext_SeedFromGlobalCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seq := int64(100)
	require.NoError(t, env.settings.UpdateReceiptSettings(ctx, &UpdateReceiptSettingsInput{
		Seq:       &seq,
		UpdatedBy: "test",
	}))

	no, err := env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `-R-0100$`, no)

	no, err = env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `-R-0101$`, no)
}

func TestNumberingNext_ConcurrentReservationsAreDistinct(t *testing.T) {
	env := newTestEnv(t)

	const n = 25
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no, err := env.numbering.Next(context.Background())
			assert.NoError(t, err)
			results <- no
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, n)
	for no := range results {
		assert.False(t, seen[no], "number %s issued twice", no)
		seen[no] = true
	}
	assert.Len(t, seen, n)
}

func TestNumberingPreview_DoesNotConsume(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	preview1, err := env.numbering.Preview(ctx)
	require.NoError(t, err)
	preview2, err := env.numbering.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview1, preview2)

	issued, err := env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview1, issued)
}

func TestNumbering_SeparateCountersPerYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.ActivateYear(ctx, "2024-25", nil, nil, "test")
	require.NoError(t, err)
	no, err := env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "202425-R-0001", no)
	no, err = env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "202425-R-0002", no)

	// Rolling over starts the new year's counter fresh and leaves the old
	// one where it stopped.
	_, err = env.settings.ActivateYear(ctx, "2025-26", nil, nil, "test")
	require.NoError(t, err)
	no, err = env.numbering.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "202526-R-0001", no)
}
