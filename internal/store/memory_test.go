package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "gameState", map[string]string{"familyName": "Meijers"}))

	var out map[string]string
	ok, err := m.Get(ctx, "gameState", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Meijers", out["familyName"])
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	var out map[string]string
	ok, err := m.Get(context.Background(), "nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_UpdateMergesFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "teams/t1", map[string]interface{}{
		"name":    "Alpha",
		"seconds": 60,
	}))
	require.NoError(t, m.Update(ctx, "teams/t1", map[string]interface{}{
		"seconds": 45,
	}))

	var out map[string]interface{}
	ok, err := m.Get(ctx, "teams/t1", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alpha", out["name"], "unnamed fields survive a merge")
	assert.Equal(t, float64(45), out["seconds"])
}

func TestMemory_UpdateCreatesMissingDocument(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, "teams/t9", map[string]interface{}{"ready": true}))

	var out map[string]interface{}
	ok, err := m.Get(ctx, "teams/t9", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, true, out["ready"])
}

func TestMemory_PushAndList(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id1, err := m.Push(ctx, "teams", map[string]string{"name": "Alpha"})
	require.NoError(t, err)
	id2, err := m.Push(ctx, "teams", map[string]string{"name": "Beta"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	// Grandchildren must not show up as direct children.
	require.NoError(t, m.Set(ctx, "teams/"+id1+"/nested", "x"))

	children, err := m.List(ctx, "teams")
	require.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Contains(t, children, id1)
	assert.Contains(t, children, id2)
}

func TestMemory_RemoveDeletesSubtree(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "teams/t1", "a"))
	require.NoError(t, m.Set(ctx, "teams/t2", "b"))
	require.NoError(t, m.Remove(ctx, "teams"))

	children, err := m.List(ctx, "teams")
	require.NoError(t, err)
	assert.Empty(t, children)

	var out string
	ok, err := m.Get(ctx, "teams/t1", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_SubscribeFiresImmediatelyAndOnChange(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var changes []string
	unsub := m.Subscribe("teams", func(changed string) {
		changes = append(changes, changed)
	})
	defer unsub()

	require.Equal(t, []string{"teams"}, changes, "initial delivery on subscribe")

	require.NoError(t, m.Set(ctx, "teams/t1", "a"))
	require.Equal(t, []string{"teams", "teams/t1"}, changes)

	// Changes outside the subtree are invisible.
	require.NoError(t, m.Set(ctx, "gameState", "x"))
	assert.Len(t, changes, 2)
}

func TestMemory_SubscribeSeesAncestorRemove(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "teams/t1", "a"))

	var changes []string
	unsub := m.Subscribe("teams/t1", func(changed string) {
		changes = append(changes, changed)
	})
	defer unsub()

	require.NoError(t, m.Remove(ctx, "teams"))
	assert.Equal(t, []string{"teams/t1", "teams"}, changes)
}

func TestMemory_UnsubscribeStopsDelivery(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	count := 0
	unsub := m.Subscribe("teams", func(string) { count++ })
	unsub()

	require.NoError(t, m.Set(ctx, "teams/t1", "a"))
	assert.Equal(t, 1, count, "only the initial delivery")
}

func TestMemory_ListCopiesAreIsolated(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Push(ctx, "teams", map[string]string{"name": "Alpha"})
	require.NoError(t, err)

	children, err := m.List(ctx, "teams")
	require.NoError(t, err)
	children[id] = json.RawMessage(`"mutated"`)

	var out map[string]string
	ok, err := m.Get(ctx, "teams/"+id, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alpha", out["name"])
}
