package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestTTYOutput_Messages(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("scheduled")
	out.Warning("Task Revit doesn't fit in any available slot")
	out.Info("fetching")

	got := stripANSI(buf.String())
	assert.Contains(t, got, "✓ scheduled")
	assert.Contains(t, got, "⚠ Task Revit doesn't fit in any available slot")
	assert.Contains(t, got, "ℹ fetching")
}

func TestTTYOutput_ErrorShowsMessageDetailAndAction(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Error(tcerrors.Wrap(tcerrors.ErrUnauthorized, "GET /api/tasks"))

	got := stripANSI(buf.String())
	assert.Contains(t, got, "✗ The task backend rejected the token.")
	assert.Contains(t, got, "GET /api/tasks: unauthorized")
	assert.Contains(t, got, "▸ Try: Log in again")
}

func TestTTYOutput_ErrorUnknown(t *testing.T) {
	var buf bytes.Buffer
	NewTTYOutput(&buf).Error(fmt.Errorf("boom")) //nolint:err113 // test error

	got := stripANSI(buf.String())
	assert.Equal(t, "✗ boom\n", got)
}

func TestTTYOutput_Events(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	require.NoError(t, out.Events(sampleEvents(), DefaultEventLayout()))

	got := stripANSI(buf.String())
	assert.Contains(t, got, "DATE")
	assert.Contains(t, got, "Mon 2024-06-03")
	assert.Contains(t, got, "08:30-12:30")
	assert.Contains(t, got, "Alice Smith")
	assert.Contains(t, got, "3 events for 2 people across 2 days (10 hours)")
}

func TestTTYOutput_EventsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTTYOutput(&buf).Events(nil, DefaultEventLayout()))
	assert.Contains(t, stripANSI(buf.String()), "No events scheduled")
}

func TestJSONOutput_Messages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Warning("careful")

	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "warning", msg["type"])
	assert.Equal(t, "careful", msg["message"])

	buf.Reset()
	out.Info("ignored")
	assert.Empty(t, buf.String())
}

func TestJSONOutput_Error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONOutput(&buf).Error(tcerrors.Wrapf(tcerrors.ErrInvalidFilterDate, "%q", "2024-13-01"))

	var got jsonError
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got.Type)
	assert.Equal(t, "The date filter is not a valid calendar date.", got.Message)
	assert.Contains(t, got.Details, "2024-13-01")
	assert.NotEmpty(t, got.Action)
}

func TestJSONOutput_Events(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	require.NoError(t, out.Events(sampleEvents(), DefaultEventLayout()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "T1-2024-06-03-1", got[0]["id"])
	assert.Equal(t, "2024-06-03T08:30:00Z", got[0]["start"])

	buf.Reset()
	require.NoError(t, out.Events(nil, DefaultEventLayout()))
	assert.JSONEq(t, "[]", buf.String())
}
