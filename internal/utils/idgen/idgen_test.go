package idgen_test

import (
	"sync"
	"testing"

	"github.com/SscSPs/library_circulation/internal/utils/idgen"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := idgen.New("")
	require.NoError(t, err)
	id, err := g.NewID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	g, err = idgen.New(idgen.FormatULID)
	require.NoError(t, err)
	id, err = g.NewID()
	require.NoError(t, err)
	_, err = ulid.ParseStrict(id)
	assert.NoError(t, err)

	_, err = idgen.New("snowflake")
	assert.Error(t, err)
}

func TestULIDGenerator_ConcurrentIDsAreUnique(t *testing.T) {
	g := idgen.NewULIDGenerator()
	const n = 200

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := g.NewID()
			assert.NoError(t, err)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}
