package postgres_test

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestUnitOfWork_Commit_PublishesStatusEvents(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, zap.NewNop())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	s := newShipment(t, 101, 1)
	require.NoError(t, uow.ShipmentRepository().Add(ctx, s))
	_, err := s.Transition(shipment.InTransit, "departed", 2, day.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, uow.ShipmentRepository().Update(ctx, s))
	assert.Empty(t, publisher.published(), "nothing leaves before commit")
	require.NoError(t, uow.Commit(ctx))

	events := publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, shipment.Booked, events[0].Status)
	assert.Equal(t, shipment.InTransit, events[1].Status)
	assert.Equal(t, "SHP-20240315-001", events[1].ShipmentNumber)
	assert.Equal(t, "departed", events[1].Remarks)
}

func TestUnitOfWork_Rollback_DiscardsWritesAndEvents(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, nil)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShipmentRepository().Add(ctx, newShipment(t, 101, 1)))
	require.NoError(t, uow.Rollback(ctx))

	assert.Empty(t, publisher.published())
	_, err := uow.ShipmentRepository().Get(ctx, 101)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	require.ErrorIs(t, uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func TestUnitOfWork_Commit_PublishFailureKeepsCommit(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, zap.NewNop())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShipmentRepository().Add(ctx, newShipment(t, 101, 1)))
	require.NoError(t, uow.Commit(ctx))

	loaded, err := factory.Create().ShipmentRepository().Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, shipment.Booked, loaded.Status())
}

func TestUnitOfWork_ConcurrentNumbering(t *testing.T) {
	const workers = 25

	ctx := t.Context()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), nil, nil)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seqs []int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			uow := factory.Create()
			if err := uow.Begin(ctx); err != nil {
				t.Error(err)
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			seq, err := uow.DocumentSequenceRepository().Next(ctx, document.ShipmentPrefix, "20240315")
			if err != nil {
				t.Error(err)
				return
			}
			if err = uow.Commit(ctx); err != nil {
				t.Error(err)
				return
			}

			mu.Lock()
			seqs = append(seqs, seq)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(seqs)
	want := make([]int, workers)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, seqs)
}

func TestUnitOfWork_Savepoint_UndoesOnlyInnerWrites(t *testing.T) {
	ctx := t.Context()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), nil, nil)
	failed := errors.New("invoice rejected")

	uow := factory.Create()
	require.ErrorIs(t, uow.Savepoint(ctx, "auto_invoice", func() error { return nil }), gorm.ErrInvalidTransaction)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShipmentRepository().Add(ctx, newShipment(t, 101, 1)))

	err := uow.Savepoint(ctx, "auto_invoice", func() error {
		seq, nextErr := uow.DocumentSequenceRepository().Next(ctx, document.InvoicePrefix, "20240315")
		require.NoError(t, nextErr)
		require.NoError(t, uow.InvoiceRepository().Add(ctx, newInvoice(t, 501, 101, seq, day)))
		return failed
	})
	require.ErrorIs(t, err, failed)
	require.NoError(t, uow.Commit(ctx))

	fresh := factory.Create()
	_, err = fresh.ShipmentRepository().Get(ctx, 101)
	require.NoError(t, err)

	inv, err := fresh.InvoiceRepository().FindActiveByShipment(ctx, 101)
	require.NoError(t, err)
	assert.Nil(t, inv)

	seq, err := fresh.DocumentSequenceRepository().Next(ctx, document.InvoicePrefix, "20240315")
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "numbers drawn inside the savepoint are reissued")
}
