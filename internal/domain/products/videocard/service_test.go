package videocard

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpustock/internal/core/apperror"
	appctx "gpustock/internal/core/context"
	"gpustock/internal/core/id"
	"gpustock/internal/domain"
)

// memCardRepo keeps cards in a map and supports snapshot/restore so the
// fake transaction manager can roll back on failure.
type memCardRepo struct {
	cards map[id.ID]*Videocard

	snapshots []map[id.ID]*Videocard
}

func newMemCardRepo() *memCardRepo {
	return &memCardRepo{cards: make(map[id.ID]*Videocard)}
}

func (r *memCardRepo) snapshot() {
	copied := make(map[id.ID]*Videocard, len(r.cards))
	for k, v := range r.cards {
		card := *v
		copied[k] = &card
	}
	r.snapshots = append(r.snapshots, copied)
}

func (r *memCardRepo) commit() {
	r.snapshots = r.snapshots[:len(r.snapshots)-1]
}

func (r *memCardRepo) rollback() {
	r.cards = r.snapshots[len(r.snapshots)-1]
	r.snapshots = r.snapshots[:len(r.snapshots)-1]
}

func (r *memCardRepo) Create(_ context.Context, card *Videocard) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *memCardRepo) GetByID(_ context.Context, cardID id.ID) (*Videocard, error) {
	card, ok := r.cards[cardID]
	if !ok {
		return nil, apperror.NewNotFound("videocard", cardID.String())
	}
	copied := *card
	return &copied, nil
}

func (r *memCardRepo) GetBySku(_ context.Context, sku string) (*Videocard, error) {
	for _, card := range r.cards {
		if card.Sku == sku {
			copied := *card
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("videocard", sku)
}

func (r *memCardRepo) GetForUpdate(ctx context.Context, cardID id.ID) (*Videocard, error) {
	return r.GetByID(ctx, cardID)
}

func (r *memCardRepo) Update(_ context.Context, card *Videocard) error {
	stored, ok := r.cards[card.ID]
	if !ok {
		return apperror.NewNotFound("videocard", card.ID.String())
	}
	copied := *card
	copied.Version = stored.Version + 1
	r.cards[card.ID] = &copied
	return nil
}

func (r *memCardRepo) Delete(_ context.Context, cardID id.ID) error {
	card, ok := r.cards[cardID]
	if !ok {
		return apperror.NewNotFound("videocard", cardID.String())
	}
	// Cards with ledger history behave like a FK violation.
	if card.Quantity > 0 {
		return apperror.NewStillReferenced("videocard", cardID.String())
	}
	delete(r.cards, cardID)
	return nil
}

func (r *memCardRepo) List(_ context.Context, _ CardFilter) (domain.ListResult[*Videocard], error) {
	result := domain.ListResult[*Videocard]{}
	for _, card := range r.cards {
		copied := *card
		result.Items = append(result.Items, &copied)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memCardRepo) Exists(_ context.Context, cardID id.ID) (bool, error) {
	_, ok := r.cards[cardID]
	return ok, nil
}

func (r *memCardRepo) AdjustQuantity(_ context.Context, cardID id.ID, delta int64) (int64, error) {
	card, ok := r.cards[cardID]
	if !ok {
		return 0, nil
	}
	if card.Quantity+delta < 0 {
		return 0, nil
	}
	card.Quantity += delta
	return 1, nil
}

// memTxManager snapshots the repo on begin and restores it when fn fails.
type memTxManager struct {
	repo *memCardRepo
}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.rollback()
		return err
	}
	m.repo.commit()
	return nil
}

// recordedOp captures a single recorder invocation.
type recordedOp struct {
	kind   string
	userID id.ID
	cardID id.ID
	qty    int64
}

// fakeRecorder mimics the ledger engine: recording an entry also applies
// the quantity adjustment to the card.
type fakeRecorder struct {
	repo *memCardRepo
	ops  []recordedOp
	err  error
}

func (f *fakeRecorder) RecordSupply(ctx context.Context, userID, cardID id.ID, qty int64) error {
	if f.err != nil {
		return f.err
	}
	f.ops = append(f.ops, recordedOp{"supply", userID, cardID, qty})
	_, err := f.repo.AdjustQuantity(ctx, cardID, qty)
	return err
}

func (f *fakeRecorder) RecordWriteoff(ctx context.Context, userID, cardID id.ID, qty int64) error {
	if f.err != nil {
		return f.err
	}
	rows, err := f.repo.AdjustQuantity(ctx, cardID, -qty)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NewInsufficientStock(cardID.String(), qty, 0)
	}
	f.ops = append(f.ops, recordedOp{"writeoff", userID, cardID, qty})
	return nil
}

func newTestCard(sku string) *Videocard {
	card := New(sku, id.New(), id.New(), id.New())
	card.MemorySize = 24
	card.Width = 140
	card.Height = 63
	card.Length = 336
	card.RecommendedPsu = 850
	card.MaxResolutionX = 7680
	card.MaxResolutionY = 4320
	card.Price = decimal.NewFromInt(1999)
	return card
}

func setup() (*Service, *memCardRepo, *fakeRecorder, context.Context) {
	repo := newMemCardRepo()
	recorder := &fakeRecorder{repo: repo}
	svc := NewService(repo, recorder, &memTxManager{repo: repo})

	adminID := id.New()
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: adminID.String(),
		Role:   "admin",
	})
	return svc, repo, recorder, ctx
}

func TestCreateRecordsInitialSupply(t *testing.T) {
	svc, repo, recorder, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 12

	require.NoError(t, svc.Create(ctx, card))

	stored, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stored.Quantity)
	assert.Equal(t, int64(12), card.Quantity)

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "supply", recorder.ops[0].kind)
	assert.Equal(t, card.ID, recorder.ops[0].cardID)
	assert.Equal(t, int64(12), recorder.ops[0].qty)
	assert.Equal(t, appctx.GetUserID(ctx), recorder.ops[0].userID.String())
}

func TestCreateWithZeroStockSkipsLedger(t *testing.T) {
	svc, repo, recorder, ctx := setup()

	card := newTestCard("RX7900XTX-NITRO")
	require.NoError(t, svc.Create(ctx, card))

	stored, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Quantity)
	assert.Empty(t, recorder.ops)
}

func TestCreateRejectsDuplicateSku(t *testing.T) {
	svc, _, _, ctx := setup()

	require.NoError(t, svc.Create(ctx, newTestCard("RTX4090-STRIX")))

	err := svc.Create(ctx, newTestCard("RTX4090-STRIX"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateWithStockRequiresActor(t *testing.T) {
	svc, repo, _, _ := setup()

	card := newTestCard("RTX4080-TUF")
	card.Quantity = 5

	err := svc.Create(context.Background(), card)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	// The insert rolled back with the failed supply.
	exists, err := repo.Exists(context.Background(), card.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateRecordsSupplyOnIncrease(t *testing.T) {
	svc, repo, recorder, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 10
	require.NoError(t, svc.Create(ctx, card))
	recorder.ops = nil

	card.Quantity = 15
	require.NoError(t, svc.Update(ctx, card))

	stored, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), stored.Quantity)

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "supply", recorder.ops[0].kind)
	assert.Equal(t, int64(5), recorder.ops[0].qty)
}

func TestUpdateRecordsWriteoffOnDecrease(t *testing.T) {
	svc, repo, recorder, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 10
	require.NoError(t, svc.Create(ctx, card))
	recorder.ops = nil

	card.Quantity = 4
	require.NoError(t, svc.Update(ctx, card))

	stored, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Quantity)

	require.Len(t, recorder.ops, 1)
	assert.Equal(t, "writeoff", recorder.ops[0].kind)
	assert.Equal(t, int64(6), recorder.ops[0].qty)
}

func TestUpdateWithUnchangedQuantitySkipsLedger(t *testing.T) {
	svc, _, recorder, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 10
	require.NoError(t, svc.Create(ctx, card))
	recorder.ops = nil

	card.Price = decimal.NewFromInt(1799)
	require.NoError(t, svc.Update(ctx, card))

	assert.Empty(t, recorder.ops)
}

func TestUpdateRejectsDuplicateSkuOnRename(t *testing.T) {
	svc, _, _, ctx := setup()

	first := newTestCard("RTX4090-STRIX")
	require.NoError(t, svc.Create(ctx, first))

	second := newTestCard("RX7900XTX-NITRO")
	require.NoError(t, svc.Create(ctx, second))

	second.Sku = "RTX4090-STRIX"
	err := svc.Update(ctx, second)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestUpdateFailedWriteoffRollsBack(t *testing.T) {
	svc, repo, recorder, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 10
	require.NoError(t, svc.Create(ctx, card))
	recorder.ops = nil

	recorder.err = apperror.NewInsufficientStock(card.ID.String(), 10, 10)

	card.Quantity = 0
	card.Color = "white"
	err := svc.Update(ctx, card)
	require.Error(t, err)

	// The row update rolled back with the failed writeoff.
	stored, getErr := repo.GetByID(ctx, card.ID)
	require.NoError(t, getErr)
	assert.Equal(t, int64(10), stored.Quantity)
	assert.Equal(t, "", stored.Color)
}

func TestDeleteMapsStillReferenced(t *testing.T) {
	svc, _, _, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	card.Quantity = 3
	require.NoError(t, svc.Create(ctx, card))

	err := svc.Delete(ctx, card.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReferenced, appErr.Code)
}

func TestDeleteRemovesCard(t *testing.T) {
	svc, repo, _, ctx := setup()

	card := newTestCard("RTX4090-STRIX")
	require.NoError(t, svc.Create(ctx, card))
	require.NoError(t, svc.Delete(ctx, card.ID))

	exists, err := repo.Exists(ctx, card.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
