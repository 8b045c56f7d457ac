package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/messages"
)

func TestExecutor_FlushEmpty(t *testing.T) {
	exec := NewExecutor()

	assert.Equal(t, 0, exec.Pending())
	assert.Nil(t, exec.Flush())
}

func TestExecutor_WorkRunsWhenCommandRuns(t *testing.T) {
	exec := NewExecutor()
	var ran, applied bool

	exec.Go(func() func() {
		ran = true
		return func() { applied = true }
	})

	assert.Equal(t, 1, exec.Pending())
	assert.False(t, ran, "work waits for the runtime")

	cmd := exec.Flush()
	require.NotNil(t, cmd)
	assert.Equal(t, 0, exec.Pending())

	msg, ok := cmd().(messages.WorkDone)
	require.True(t, ok)
	assert.True(t, ran)
	assert.False(t, applied, "completion is applied by Update")

	msg.Apply()
	assert.True(t, applied)
}

func TestExecutor_NilCompletion(t *testing.T) {
	exec := NewExecutor()
	exec.Go(func() func() { return nil })

	msg, ok := exec.Flush()().(messages.WorkDone)

	require.True(t, ok)
	assert.Nil(t, msg.Apply)
}

func TestExecutor_FlushBatchesEverything(t *testing.T) {
	exec := NewExecutor()
	exec.Go(func() func() { return nil })
	exec.Go(func() func() { return nil })

	assert.NotNil(t, exec.Flush())
	assert.Nil(t, exec.Flush(), "second flush has nothing left")
}
