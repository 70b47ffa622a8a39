package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpustock/internal/core/apperror"
	"gpustock/internal/core/id"
	"gpustock/internal/domain"
	"gpustock/internal/domain/products/videocard"
)

// --- in-memory store with copy-on-begin transactions ---

type memStore struct {
	entries map[id.ID]*Entry
	cards   map[id.ID]*videocard.Videocard
}

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[id.ID]*Entry),
		cards:   make(map[id.ID]*videocard.Videocard),
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for k, v := range s.entries {
		e := *v
		snap.entries[k] = &e
	}
	for k, v := range s.cards {
		c := *v
		snap.cards[k] = &c
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.entries = snap.entries
	s.cards = snap.cards
}

// memTxManager rolls the store back when fn fails, mirroring the
// transactional guarantees of the real store. An active transaction is
// carried in the context like the real manager does, and outer
// transactions are serialized by a mutex the way the row lock on the
// card serializes them in Postgres.
type memTxManager struct {
	store *memStore
	mu    sync.Mutex
}

type memTxKey struct{}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.snapshot()
	err := fn(context.WithValue(ctx, memTxKey{}, struct{}{}))
	if err != nil {
		m.store.restore(snap)
	}
	return err
}

type memEntryRepo struct {
	store *memStore
}

func (r *memEntryRepo) Insert(ctx context.Context, entry *Entry) error {
	e := *entry
	r.store.entries[e.ID] = &e
	return nil
}

func (r *memEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	e, ok := r.store.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("ledger_entry", entryID.String())
	}
	cp := *e
	return &cp, nil
}

func (r *memEntryRepo) Update(ctx context.Context, entry *Entry) error {
	if _, ok := r.store.entries[entry.ID]; !ok {
		return apperror.NewNotFound("ledger_entry", entry.ID.String())
	}
	e := *entry
	r.store.entries[e.ID] = &e
	return nil
}

func (r *memEntryRepo) Delete(ctx context.Context, entryID id.ID) error {
	if _, ok := r.store.entries[entryID]; !ok {
		return apperror.NewNotFound("ledger_entry", entryID.String())
	}
	delete(r.store.entries, entryID)
	return nil
}

func (r *memEntryRepo) SumQuantity(ctx context.Context, userID, videocardID id.ID, kind Kind, excludeID id.ID) (int64, error) {
	var sum int64
	for _, e := range r.store.entries {
		if e.ID == excludeID {
			continue
		}
		if e.UserID == userID && e.VideocardID == videocardID && e.Kind == kind {
			sum += e.Quantity
		}
	}
	return sum, nil
}

func (r *memEntryRepo) List(ctx context.Context, f EntryFilter) (domain.ListResult[*Entry], error) {
	var items []*Entry
	for _, e := range r.store.entries {
		cp := *e
		items = append(items, &cp)
	}
	return domain.ListResult[*Entry]{Items: items, TotalCount: int64(len(items))}, nil
}

type memCardRepo struct {
	store *memStore
}

func (r *memCardRepo) Create(ctx context.Context, card *videocard.Videocard) error {
	c := *card
	r.store.cards[c.ID] = &c
	return nil
}

func (r *memCardRepo) GetByID(ctx context.Context, cardID id.ID) (*videocard.Videocard, error) {
	c, ok := r.store.cards[cardID]
	if !ok {
		return nil, apperror.NewNotFound("videocard", cardID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *memCardRepo) GetBySku(ctx context.Context, sku string) (*videocard.Videocard, error) {
	for _, c := range r.store.cards {
		if c.Sku == sku {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("videocard", sku)
}

func (r *memCardRepo) GetForUpdate(ctx context.Context, cardID id.ID) (*videocard.Videocard, error) {
	return r.GetByID(ctx, cardID)
}

func (r *memCardRepo) Update(ctx context.Context, card *videocard.Videocard) error {
	c := *card
	r.store.cards[c.ID] = &c
	return nil
}

func (r *memCardRepo) Delete(ctx context.Context, cardID id.ID) error {
	delete(r.store.cards, cardID)
	return nil
}

func (r *memCardRepo) List(ctx context.Context, f videocard.CardFilter) (domain.ListResult[*videocard.Videocard], error) {
	return domain.ListResult[*videocard.Videocard]{}, nil
}

func (r *memCardRepo) Exists(ctx context.Context, cardID id.ID) (bool, error) {
	_, ok := r.store.cards[cardID]
	return ok, nil
}

func (r *memCardRepo) AdjustQuantity(ctx context.Context, cardID id.ID, delta int64) (int64, error) {
	c, ok := r.store.cards[cardID]
	if !ok {
		return 0, nil
	}
	if c.Quantity+delta < 0 {
		return 0, nil
	}
	c.Quantity += delta
	return 1, nil
}

// --- fixture ---

type fixture struct {
	svc   *Service
	store *memStore
	card  *videocard.Videocard
	card2 *videocard.Videocard
	user  id.ID
	admin id.ID
}

func newFixture(t *testing.T, initialStock int64) *fixture {
	t.Helper()

	store := newMemStore()
	txm := &memTxManager{store: store}
	cards := &memCardRepo{store: store}
	entries := &memEntryRepo{store: store}

	card := videocard.New("RTX4090-STRIX", id.New(), id.New(), id.New())
	card.Quantity = initialStock
	store.cards[card.ID] = card

	card2 := videocard.New("RX7900XTX-NITRO", id.New(), id.New(), id.New())
	card2.Quantity = initialStock
	store.cards[card2.ID] = card2

	return &fixture{
		svc:   NewService(entries, cards, txm),
		store: store,
		card:  card,
		card2: card2,
		user:  id.New(),
		admin: id.New(),
	}
}

func (f *fixture) stock(t *testing.T, cardID id.ID) int64 {
	t.Helper()
	c, ok := f.store.cards[cardID]
	require.True(t, ok)
	return c.Quantity
}

func (f *fixture) mustCreate(t *testing.T, userID id.ID, cardID id.ID, kind Kind, qty int64) *Entry {
	t.Helper()
	e := NewEntry(userID, cardID, kind, qty)
	require.NoError(t, f.svc.Create(context.Background(), e))
	return e
}

// --- tests ---

func TestCreateAppliesSignedEffect(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		qty       int64
		wantStock int64
	}{
		{"supply increases", KindSupply, 5, 15},
		{"writeoff decreases", KindWriteoff, 4, 6},
		{"sale decreases", KindSale, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 10)
			f.mustCreate(t, f.admin, f.card.ID, tt.kind, tt.qty)
			assert.Equal(t, tt.wantStock, f.stock(t, f.card.ID))
		})
	}
}

func TestCreateAssignsIDAndDate(t *testing.T) {
	f := newFixture(t, 10)

	e := NewEntry(f.admin, f.card.ID, KindSupply, 1)
	require.True(t, id.IsNil(e.ID))
	require.NoError(t, f.svc.Create(context.Background(), e))

	assert.False(t, id.IsNil(e.ID))
	assert.False(t, e.Date.IsZero())
}

func TestCreateRejectsInvalidQuantity(t *testing.T) {
	f := newFixture(t, 10)

	for _, qty := range []int64{0, -3} {
		err := f.svc.Create(context.Background(), NewEntry(f.admin, f.card.ID, KindSupply, qty))
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidQuantity), "qty=%d", qty)
	}

	assert.Equal(t, int64(10), f.stock(t, f.card.ID))
	assert.Empty(t, f.store.entries)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	f := newFixture(t, 10)

	err := f.svc.Create(context.Background(), NewEntry(f.admin, f.card.ID, Kind("donation"), 1))
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidOperationKind))
	assert.Equal(t, int64(10), f.stock(t, f.card.ID))
	assert.Empty(t, f.store.entries)
}

func TestCreateRejectsOverdraw(t *testing.T) {
	f := newFixture(t, 3)

	err := f.svc.Create(context.Background(), NewEntry(f.user, f.card.ID, KindSale, 4))
	require.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(3), appErr.Details["available"])

	assert.Equal(t, int64(3), f.stock(t, f.card.ID))
	assert.Empty(t, f.store.entries)
}

func TestCreateUnknownCard(t *testing.T) {
	f := newFixture(t, 10)

	err := f.svc.Create(context.Background(), NewEntry(f.admin, id.New(), KindSupply, 1))
	assert.True(t, apperror.IsNotFound(err))
}

func TestReturnBound(t *testing.T) {
	f := newFixture(t, 20)

	// The customer bought 10 and already returned 3.
	f.mustCreate(t, f.user, f.card.ID, KindSale, 10)
	f.mustCreate(t, f.user, f.card.ID, KindReturn, 3)

	// 7 more may come back; 8 may not.
	err := f.svc.Create(context.Background(), NewEntry(f.user, f.card.ID, KindReturn, 8))
	require.True(t, apperror.IsCode(err, apperror.CodeReturnExceedsBound))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(7), appErr.Details["max_returnable"])

	require.NoError(t, f.svc.Create(context.Background(), NewEntry(f.user, f.card.ID, KindReturn, 7)))
	assert.Equal(t, int64(20), f.stock(t, f.card.ID)) // 20 -10 +3 +7
}

func TestReturnNeverPurchased(t *testing.T) {
	f := newFixture(t, 20)

	// Another customer's sale does not open a bound for this user.
	f.mustCreate(t, f.admin, f.card.ID, KindSale, 5)

	err := f.svc.Create(context.Background(), NewEntry(f.user, f.card.ID, KindReturn, 1))
	assert.True(t, apperror.IsCode(err, apperror.CodeNeverPurchased))
}

func TestReturnBoundIsPerCard(t *testing.T) {
	f := newFixture(t, 20)

	f.mustCreate(t, f.user, f.card.ID, KindSale, 5)

	// Purchase on one card does not allow a return on another.
	err := f.svc.Create(context.Background(), NewEntry(f.user, f.card2.ID, KindReturn, 1))
	assert.True(t, apperror.IsCode(err, apperror.CodeNeverPurchased))
}

func TestMaxReturnable(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	f.mustCreate(t, f.user, f.card.ID, KindSale, 10)
	ret := f.mustCreate(t, f.user, f.card.ID, KindReturn, 3)

	bound, sold, err := f.svc.MaxReturnable(ctx, f.user, f.card.ID, id.Nil())
	require.NoError(t, err)
	assert.Equal(t, int64(7), bound)
	assert.Equal(t, int64(10), sold)

	// Excluding the in-flight return frees its quantity.
	bound, _, err = f.svc.MaxReturnable(ctx, f.user, f.card.ID, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bound)
}

func TestUpdateAppliesNetEffect(t *testing.T) {
	f := newFixture(t, 25)

	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 8)
	require.Equal(t, int64(17), f.stock(t, f.card.ID))

	// Shrink the sale from 8 to 5: net +3 back on the counter.
	edited := *sale
	edited.Quantity = 5
	require.NoError(t, f.svc.Update(context.Background(), &edited))
	assert.Equal(t, int64(20), f.stock(t, f.card.ID))
}

func TestUpdateGrowsSupplyOnSoldThroughCard(t *testing.T) {
	f := newFixture(t, 0)

	supply := f.mustCreate(t, f.admin, f.card.ID, KindSupply, 5)
	f.mustCreate(t, f.user, f.card.ID, KindSale, 4)
	require.Equal(t, int64(1), f.stock(t, f.card.ID))

	// Net +5. Reversing the supply first would need stock -4 and must
	// not be what trips the guard here.
	edited := *supply
	edited.Quantity = 10
	require.NoError(t, f.svc.Update(context.Background(), &edited))
	assert.Equal(t, int64(6), f.stock(t, f.card.ID))

	// Shrinking it below what was sold through still fails.
	edited.Quantity = 3
	err := f.svc.Update(context.Background(), &edited)
	require.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
	assert.Equal(t, int64(6), f.stock(t, f.card.ID))
}

func TestUpdateWithSameValuesIsNoop(t *testing.T) {
	f := newFixture(t, 25)

	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 8)
	edited := *sale
	require.NoError(t, f.svc.Update(context.Background(), &edited))
	assert.Equal(t, int64(17), f.stock(t, f.card.ID))
}

func TestUpdateCanChangeKind(t *testing.T) {
	f := newFixture(t, 10)

	supply := f.mustCreate(t, f.admin, f.card.ID, KindSupply, 5)
	require.Equal(t, int64(15), f.stock(t, f.card.ID))

	edited := *supply
	edited.Kind = KindWriteoff
	require.NoError(t, f.svc.Update(context.Background(), &edited))

	// Net effect moves from +5 to -5.
	assert.Equal(t, int64(5), f.stock(t, f.card.ID))
}

func TestUpdateMovesEntryBetweenCards(t *testing.T) {
	f := newFixture(t, 10)

	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 4)
	require.Equal(t, int64(6), f.stock(t, f.card.ID))

	edited := *sale
	edited.VideocardID = f.card2.ID
	require.NoError(t, f.svc.Update(context.Background(), &edited))

	assert.Equal(t, int64(10), f.stock(t, f.card.ID))
	assert.Equal(t, int64(6), f.stock(t, f.card2.ID))
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 10)

	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 4)
	require.Equal(t, int64(6), f.stock(t, f.card.ID))

	// Growing the sale beyond available stock must fail and leave both
	// the counter and the entry untouched.
	edited := *sale
	edited.Quantity = 11
	err := f.svc.Update(context.Background(), &edited)
	require.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	assert.Equal(t, int64(6), f.stock(t, f.card.ID))
	stored := f.store.entries[sale.ID]
	require.NotNil(t, stored)
	assert.Equal(t, int64(4), stored.Quantity)
}

func TestUpdateReturnBoundExcludesSelf(t *testing.T) {
	f := newFixture(t, 20)

	f.mustCreate(t, f.user, f.card.ID, KindSale, 10)
	ret := f.mustCreate(t, f.user, f.card.ID, KindReturn, 3)

	// The edited return itself must not count against the bound: growing
	// it to the full 10 is allowed.
	edited := *ret
	edited.Quantity = 10
	require.NoError(t, f.svc.Update(context.Background(), &edited))

	// 13 plus the net +7 of the grown return
	assert.Equal(t, int64(20), f.stock(t, f.card.ID))

	// But 11 exceeds what was ever bought.
	edited.Quantity = 11
	err := f.svc.Update(context.Background(), &edited)
	assert.True(t, apperror.IsCode(err, apperror.CodeReturnExceedsBound))
}

func TestUpdateUnknownEntry(t *testing.T) {
	f := newFixture(t, 10)

	ghost := NewEntry(f.user, f.card.ID, KindSale, 1)
	ghost.ID = id.New()
	err := f.svc.Update(context.Background(), ghost)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdatePreservesCommitDate(t *testing.T) {
	f := newFixture(t, 10)

	supply := f.mustCreate(t, f.admin, f.card.ID, KindSupply, 2)
	committed := supply.Date

	edited := *supply
	edited.Date = committed.AddDate(0, 0, 0) // zero change, explicit date kept
	edited.Quantity = 3
	require.NoError(t, f.svc.Update(context.Background(), &edited))
	assert.Equal(t, committed, f.store.entries[supply.ID].Date)
}

func TestDeleteReversesEffect(t *testing.T) {
	f := newFixture(t, 10)

	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 4)
	require.Equal(t, int64(6), f.stock(t, f.card.ID))

	require.NoError(t, f.svc.Delete(context.Background(), sale.ID))
	assert.Equal(t, int64(10), f.stock(t, f.card.ID))
	assert.Empty(t, f.store.entries)
}

func TestDeleteSupplyBlockedByCounterGuard(t *testing.T) {
	f := newFixture(t, 0)

	supply := f.mustCreate(t, f.admin, f.card.ID, KindSupply, 5)
	f.mustCreate(t, f.user, f.card.ID, KindSale, 4)
	require.Equal(t, int64(1), f.stock(t, f.card.ID))

	// Reversing the supply would leave the counter at -4; the guard
	// refuses and the entry stays.
	err := f.svc.Delete(context.Background(), supply.ID)
	require.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	assert.Equal(t, int64(1), f.stock(t, f.card.ID))
	assert.Contains(t, f.store.entries, supply.ID)
}

func TestDeleteUnknownEntry(t *testing.T) {
	f := newFixture(t, 10)

	err := f.svc.Delete(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestCounterMatchesEntrySum(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	f.mustCreate(t, f.admin, f.card.ID, KindSupply, 30)
	sale := f.mustCreate(t, f.user, f.card.ID, KindSale, 12)
	f.mustCreate(t, f.user, f.card.ID, KindReturn, 2)
	f.mustCreate(t, f.admin, f.card.ID, KindWriteoff, 1)

	edited := *sale
	edited.Quantity = 9
	require.NoError(t, f.svc.Update(ctx, &edited))

	var sum int64
	for _, e := range f.store.entries {
		sum += e.SignedEffect()
	}
	assert.Equal(t, sum, f.stock(t, f.card.ID))
}

func TestConcurrentSalesRespectStock(t *testing.T) {
	f := newFixture(t, 10)

	// Two sales of 6 race for a stock of 10: only one fits. Each runs in
	// its own transaction with the card row held, so the loser sees the
	// committed counter and is rejected by the guard.
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- f.svc.Create(context.Background(), NewEntry(f.user, f.card.ID, KindSale, 6))
		}()
	}

	var rejected int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			require.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
			rejected++
		}
	}

	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(4), f.stock(t, f.card.ID))
	assert.Len(t, f.store.entries, 1)
}

func TestRecordSupplyAndWriteoff(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	require.NoError(t, f.svc.RecordSupply(ctx, f.admin, f.card.ID, 5))
	assert.Equal(t, int64(15), f.stock(t, f.card.ID))

	require.NoError(t, f.svc.RecordWriteoff(ctx, f.admin, f.card.ID, 15))
	assert.Equal(t, int64(0), f.stock(t, f.card.ID))

	err := f.svc.RecordWriteoff(ctx, f.admin, f.card.ID, 1)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
}
