package canned

import (
	"context"
	"testing"

	"vet-intelligent/internal/domain/diagnosis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoke_ReturnsTwoItemsRegardlessOfPrompt(t *testing.T) {
	inv := New()

	a, err := inv.Invoke(context.Background(), "prompt a")
	require.NoError(t, err)
	b, err := inv.Invoke(context.Background(), "something else")
	require.NoError(t, err)

	require.Len(t, a, 2)
	assert.Equal(t, a, b)

	assert.Equal(t, "Gastroenterite Viral Canina (Simulada)", a[0].Condition)
	assert.Equal(t, diagnosis.LevelHigh, a[0].Probability)
	assert.Equal(t, diagnosis.LevelMedium, a[0].Urgency)
	assert.Len(t, a[0].Treatments, 4)
	assert.Equal(t, diagnosis.LevelMedium, a[1].Probability)
}

func TestInvoke_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Invoke(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
