package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilhermegouw/bindery/internal/config"
	"github.com/guilhermegouw/bindery/internal/events"
)

func newTestWorkspace(t *testing.T) *workspace {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Bus.Name = "test"
	ws, err := newWorkspace(cfg)
	require.NoError(t, err)
	t.Cleanup(ws.close)
	return ws
}

func TestNewWorkspaceSeedsCustomers(t *testing.T) {
	ws := newTestWorkspace(t)

	assert.Equal(t, "test", ws.hub.Bus.Name())
	assert.Equal(t, len(seedCustomers), ws.list.Len())
	assert.Equal(t, 1, ws.hub.Bus.SubscriberCount(events.TopicCustomerSelected))
	assert.Contains(t, ws.editor.Session().Excluded(), "IsDirty")
}

func TestNewWorkspaceAppliesExcludedProperties(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Edit.ExcludedProperties = []string{"Notes"}

	ws, err := newWorkspace(cfg)
	require.NoError(t, err)
	defer ws.close()

	assert.Contains(t, ws.editor.Session().Excluded(), "Notes")
	assert.Contains(t, ws.editor.Session().Excluded(), "HasErrors")
}

func TestRunDemo(t *testing.T) {
	ws := newTestWorkspace(t)
	var out bytes.Buffer

	res, err := runDemo(&out, ws)
	require.NoError(t, err)

	assert.Equal(t, 1, res.updates)
	assert.True(t, res.senderIsEditor)
	assert.Equal(t, "Jane Doe", res.committedName)
	assert.Equal(t, "Jane Doe", res.lookedUp)
	assert.Equal(t, "john@example.com", res.cancelledEmail)
	assert.Equal(t, 0, res.unrelated)
	assert.Equal(t, "demo finished", res.status)
	assert.Contains(t, res.bridged, "customer #1 Jane Doe")
	assert.Contains(t, res.bridged, "edit committed #1")
	assert.Equal(t, "status: demo finished", res.bridged[len(res.bridged)-1])

	assert.Contains(t, out.String(), "Round trip")
	assert.Contains(t, out.String(), "=== Bus test")
}

func TestPrintStats(t *testing.T) {
	ws := newTestWorkspace(t)
	_, err := runDemo(&bytes.Buffer{}, ws)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printStats(&out, ws))

	assert.Contains(t, out.String(), "Bus test")
	assert.Contains(t, out.String(), "bindery_bus_published_total")
	assert.Contains(t, out.String(), `topic="customer-updated"`)
}

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
		want any
	}{
		{name: "bool", key: "bus.recover_panics", raw: "true", want: true},
		{name: "string", key: "bus.name", raw: "main", want: "main"},
		{name: "list", key: "edit.excluded_properties", raw: "A, B,,C", want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseConfigValue(tt.key, tt.raw))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "bindery "+Version+"\n", out.String())
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"demo", "stats", "config", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
