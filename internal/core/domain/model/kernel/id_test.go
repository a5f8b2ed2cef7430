package kernel_test

import (
	"sync"
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name    string
		raw     int64
		wantErr bool
	}{
		{name: "positive", raw: 42},
		{name: "zero", raw: 0, wantErr: true},
		{name: "negative", raw: -7, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.NewID(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, id.Int64())
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := kernel.ParseID("1001")
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(1001), id)
	assert.Equal(t, "1001", id.String())

	_, err = kernel.ParseID("abc")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.ParseID("0")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSnowflakeGenerator(t *testing.T) {
	t.Run("rejects node outside snowflake range", func(t *testing.T) {
		_, err := kernel.NewSnowflakeGenerator(5000)
		require.Error(t, err)
	})

	t.Run("issues unique positive ids concurrently", func(t *testing.T) {
		gen, err := kernel.NewSnowflakeGenerator(1)
		require.NoError(t, err)

		const workers, perWorker = 8, 250
		var (
			mu   sync.Mutex
			seen = make(map[kernel.ID]struct{}, workers*perWorker)
			wg   sync.WaitGroup
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perWorker {
					id := gen.NextID()
					mu.Lock()
					seen[id] = struct{}{}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, seen, workers*perWorker)
		for id := range seen {
			require.NoError(t, id.Validate())
		}
	})
}
