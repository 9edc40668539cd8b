package modelstore

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fitmesh/discrim"
	"github.com/hupe1980/fitmesh/internal/testutil"
	"github.com/hupe1980/fitmesh/registry"
	"github.com/hupe1980/fitmesh/spec"
)

func fitMixture(t *testing.T) *spec.Fitted {
	t.Helper()
	r := registry.New()
	require.NoError(t, discrim.Register(r))
	s, err := discrim.Mixture(r)
	require.NoError(t, err)
	fitted, err := s.Fit(context.Background(), testutil.TwoClassTraining())
	require.NoError(t, err)
	return fitted
}

func TestInMemoryStoreSaveGet(t *testing.T) {
	store := NewInMemoryStore()
	fitted := fitMixture(t)

	require.NoError(t, store.Save(fitted))

	got, err := store.Get(fitted.Model(), fitted.ID())
	require.NoError(t, err)
	assert.Same(t, fitted, got)

	_, err = store.Get(fitted.Model(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("linear_reg", fitted.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStoreListAndDelete(t *testing.T) {
	store := NewInMemoryStore()
	first := fitMixture(t)
	second := fitMixture(t)

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	ids, err := store.List(first.Model())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID().String())

	require.NoError(t, store.Delete(first.Model(), first.ID()))
	_, err = store.Get(first.Model(), first.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err = store.List(first.Model())
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	assert.ErrorIs(t, store.Delete(first.Model(), first.ID()), ErrNotFound)
}

func TestInMemoryStoreListUnknownModel(t *testing.T) {
	store := NewInMemoryStore()
	ids, err := store.List("boost_tree")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestInMemoryStoreConcurrency(t *testing.T) {
	store := NewInMemoryStore()
	fitted := fitMixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Save(fitted); err != nil {
				t.Errorf("save err: %v", err)
			}
			_, _ = store.List(fitted.Model())
		}()
	}
	wg.Wait()

	ids, err := store.List(fitted.Model())
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}
