package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemory(t *testing.T) {
	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ctx.Close()
	})

	assert.NotNil(t, ctx.Config)
	assert.NotNil(t, ctx.Clock)
	assert.NotNil(t, ctx.SettingsRepo)
	assert.NotNil(t, ctx.PromptRepo)
	assert.NotNil(t, ctx.WebhookRepo)
	assert.NotNil(t, ctx.Notifier)
	assert.NotNil(t, ctx.Dispatcher)
	assert.NotNil(t, ctx.Analytics)
	assert.NotNil(t, ctx.Reminders)

	// The first run records the first-launch instant; asking again later
	// returns the same record.
	firstLaunch, err := ctx.PromptRepo.FirstLaunch(ctx.Clock.Now())
	require.NoError(t, err)
	assert.False(t, firstLaunch.IsZero())
	assert.False(t, firstLaunch.After(ctx.Clock.Now()))
}
