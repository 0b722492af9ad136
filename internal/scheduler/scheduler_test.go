package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFire(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

	next, err := NextFire(now, []string{"08:00", "20:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC), next)

	// both slots already passed: roll over to tomorrow's earliest
	late := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)
	next, err = NextFire(late, []string{"08:00", "20:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC), next)

	// exactly on the slot fires the next day, never immediately again
	onSlot := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	next, err = NextFire(onSlot, []string{"08:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC), next)
}

func TestNextFireRejectsBadInput(t *testing.T) {
	_, err := NextFire(time.Now(), nil)
	assert.Error(t, err)

	_, err = NextFire(time.Now(), []string{"25:99"})
	assert.Error(t, err)
}
