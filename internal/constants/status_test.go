package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   TaskStatus
		expected string
	}{
		{name: "pending status", status: TaskStatusPending, expected: "Pending"},
		{name: "approved status", status: TaskStatusApproved, expected: "Approved"},
		{name: "rejected status", status: TaskStatusRejected, expected: "Rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestTaskStatus_IsSchedulable(t *testing.T) {
	assert.True(t, TaskStatusApproved.IsSchedulable())
	assert.False(t, TaskStatusPending.IsSchedulable())
	assert.False(t, TaskStatusRejected.IsSchedulable())
	assert.False(t, TaskStatus("approved").IsSchedulable(), "status matching is case-sensitive like the backend")
}

func TestTaskStatus_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(TaskStatusApproved)
	require.NoError(t, err)
	assert.JSONEq(t, `"Approved"`, string(data))

	var got TaskStatus
	require.NoError(t, json.Unmarshal([]byte(`"Rejected"`), &got))
	assert.Equal(t, TaskStatusRejected, got)
}

func TestAllTaskStatuses(t *testing.T) {
	statuses := AllTaskStatuses()
	assert.Len(t, statuses, 3)
	assert.Contains(t, statuses, TaskStatusApproved)
}
