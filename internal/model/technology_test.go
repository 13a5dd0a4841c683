package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_NextCycles(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusNotStarted, StatusCompleted.Next())
}

func TestStatus_NextOnUnknownRestartsCycle(t *testing.T) {
	assert.Equal(t, StatusNotStarted, Status("paused").Next())
	assert.Equal(t, StatusNotStarted, Status("").Next())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("done").Valid())
	assert.False(t, Status("").Valid())
}
