package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/enum"
)

func TestReceiptSettings_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	settings, err := env.settings.GetReceiptSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, enum.NumberingModeAuto, settings.Mode)
	assert.NotEmpty(t, settings.NextNumber)

	mode := "manual"
	prefix := "SCH-AY"
	name := "Green Valley School"
	require.NoError(t, env.settings.UpdateReceiptSettings(ctx, &UpdateReceiptSettingsInput{
		Mode:       &mode,
		Prefix:     &prefix,
		SchoolName: &name,
		UpdatedBy:  "test",
	}))

	settings, err = env.settings.GetReceiptSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, enum.NumberingModeManual, settings.Mode)
	assert.Equal(t, "SCH-AY", settings.Prefix)
	assert.Equal(t, "Green Valley School", settings.SchoolName)
	// In manual mode there is no next number to preview.
	assert.Empty(t, settings.NextNumber)
}

func TestUpdateReceiptSettings_RejectsBadValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mode := "random"
	err := env.settings.UpdateReceiptSettings(ctx, &UpdateReceiptSettingsInput{Mode: &mode, UpdatedBy: "test"})
	require.Error(t, err)

	seq := int64(0)
	err = env.settings.UpdateReceiptSettings(ctx, &UpdateReceiptSettingsInput{Seq: &seq, UpdatedBy: "test"})
	require.Error(t, err)
}

func TestActivateYear_SingleActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.ActivateYear(ctx, "2024-25", nil, nil, "test")
	require.NoError(t, err)
	_, err = env.settings.ActivateYear(ctx, "2025-26", nil, nil, "test")
	require.NoError(t, err)

	active, err := env.settings.ActiveYear(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "2025-26", active.Name)

	years, err := env.settings.ListYears(ctx)
	require.NoError(t, err)
	require.Len(t, years, 2)
	activeCount := 0
	for _, y := range years {
		if y.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	// Re-activating an existing year flips the flag back without creating a
	// duplicate row.
	_, err = env.settings.ActivateYear(ctx, "2024-25", nil, nil, "test")
	require.NoError(t, err)
	years, err = env.settings.ListYears(ctx)
	require.NoError(t, err)
	assert.Len(t, years, 2)
}

func TestRolloverYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Nothing to roll over on a fresh install.
	_, err := env.settings.RolloverYear(ctx, "test")
	require.Error(t, err)

	_, err = env.settings.ActivateYear(ctx, "2024-25", nil, nil, "test")
	require.NoError(t, err)

	next, err := env.settings.RolloverYear(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, "2025-26", next.Name)

	active, err := env.settings.ActiveYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-26", active.Name)
}

func TestNextYearName(t *testing.T) {
	cases := map[string]string{
		"2024-25":   "2025-26",
		"2024-2025": "2025-2026",
		"2024":      "2025",
		"1999-00":   "2000-01",
	}
	for in, want := range cases {
		got, err := nextYearName(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "rolling %s", in)
	}

	_, err := nextYearName("Spring Term")
	require.Error(t, err)
}
