package lead

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/audit-api/internal/model"
)

func sampleLead(id string) model.Lead {
	return model.Lead{
		ID:           id,
		Timestamp:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		IP:           "203.0.113.7",
		BusinessName: "Joe's Pizza",
		City:         "Austin, TX",
		BusinessType: "Restaurant / Cafe",
		Status:       model.LeadStatusSuccess,
	}
}

func TestFileStore_AppendAndList(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "leads.json"))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleLead("a")))
	require.NoError(t, store.Append(ctx, sampleLead("b")))

	leads, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	// Append order is preserved.
	assert.Equal(t, "a", leads[0].ID)
	assert.Equal(t, "b", leads[1].ID)
	assert.Equal(t, "Joe's Pizza", leads[0].BusinessName)
	assert.Equal(t, model.LeadStatusSuccess, leads[0].Status)
}

func TestFileStore_MissingFileIsEmptyLog(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nonexistent.json"))

	leads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFileStore_ConcurrentAppends(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "leads.json"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(ctx, sampleLead(fmt.Sprintf("lead-%d", i))))
		}(i)
	}
	wg.Wait()

	leads, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 20)
}

func TestFileStore_AppendFailsWithoutParentDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "leads.json"))
	err := store.Append(context.Background(), sampleLead("a"))
	assert.Error(t, err)
}
