package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

type queryReply struct {
	res Result
	err error
}

// fakeSource answers queries from a queue of scripted replies.
type fakeSource struct {
	mu      sync.Mutex
	replies []queryReply
	calls   []Query
}

func (s *fakeSource) push(res Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, queryReply{res: res, err: err})
}

func (s *fakeSource) Query(ctx context.Context, q Query) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, q)
	if len(s.replies) == 0 {
		return Result{}, errors.New("fakeSource: no reply queued")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply.res, reply.err
}

func (s *fakeSource) lastCall(t *testing.T) Query {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

// blockingSource parks every query until the test releases it, so response
// ordering can be controlled explicitly.
type blockingSource struct {
	callCh chan *sourceCall
}

type sourceCall struct {
	query   Query
	release chan queryReply
}

func (s *blockingSource) Query(ctx context.Context, q Query) (Result, error) {
	call := &sourceCall{query: q, release: make(chan queryReply)}
	s.callCh <- call
	reply := <-call.release
	return reply.res, reply.err
}

func viewItem(id int64, name string, priceTRY float64) Item {
	return Item{ID: id, CompanyID: 1, Name: name, ListPrice: priceTRY, Currency: "TRY", ListPriceBase: &priceTRY}
}

func TestViewApplyLoadsFirstPage(t *testing.T) {
	src := &fakeSource{}
	src.push(Result{Items: []Item{viewItem(1, "Kombi A", 100), viewItem(2, "Kombi B", 200)}, TotalCount: 5}, nil)

	view := NewView(src, 2)
	require.NoError(t, view.Apply(context.Background(), Filter{Search: "kombi"}))

	assert.Equal(t, 2, view.Loaded())
	assert.Equal(t, 5, view.TotalCount())
	assert.True(t, view.HasMore())

	q := src.lastCall(t)
	assert.Equal(t, "kombi", q.Search)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 2, q.PageSize)
}

func TestViewLoadMoreAppends(t *testing.T) {
	src := &fakeSource{}
	src.push(Result{Items: []Item{viewItem(1, "Kombi A", 100), viewItem(2, "Kombi B", 200)}, TotalCount: 3}, nil)
	src.push(Result{Items: []Item{viewItem(3, "Kombi C", 300)}, TotalCount: 3}, nil)

	view := NewView(src, 2)
	ctx := context.Background()
	require.NoError(t, view.Apply(ctx, Filter{}))
	require.NoError(t, view.LoadMore(ctx))

	items := view.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[2].ID)
	assert.False(t, view.HasMore())
	assert.Equal(t, 2, src.lastCall(t).Page)
}

func TestViewLoadMoreStopsWhenEverythingLoaded(t *testing.T) {
	src := &fakeSource{}
	src.push(Result{Items: []Item{viewItem(1, "Kombi A", 100)}, TotalCount: 1}, nil)

	view := NewView(src, 2)
	ctx := context.Background()
	require.NoError(t, view.Apply(ctx, Filter{}))
	require.NoError(t, view.LoadMore(ctx))

	src.mu.Lock()
	calls := len(src.calls)
	src.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestViewFilterChangeReplacesNotAppends(t *testing.T) {
	src := &fakeSource{}
	src.push(Result{Items: []Item{viewItem(1, "Kombi A", 100), viewItem(2, "Kombi B", 200)}, TotalCount: 2}, nil)
	src.push(Result{Items: []Item{viewItem(9, "Radyator", 50)}, TotalCount: 1}, nil)

	view := NewView(src, 2)
	ctx := context.Background()
	require.NoError(t, view.Apply(ctx, Filter{Search: "kombi"}))
	require.NoError(t, view.Apply(ctx, Filter{Search: "radyator"}))

	items := view.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].ID)
	assert.Equal(t, 1, view.TotalCount())
}

func TestViewStaleResponseDiscarded(t *testing.T) {
	src := &blockingSource{callCh: make(chan *sourceCall, 2)}
	view := NewView(src, 10)

	first := make(chan error, 1)
	go func() { first <- view.Apply(context.Background(), Filter{Search: "kombi"}) }()
	call1 := <-src.callCh

	second := make(chan error, 1)
	go func() { second <- view.Apply(context.Background(), Filter{Search: "radyator"}) }()
	call2 := <-src.callCh

	// The newer query answers first.
	call2.release <- queryReply{res: Result{Items: []Item{viewItem(9, "Radyator", 50)}, TotalCount: 1}}
	require.NoError(t, <-second)

	// The older response arrives afterwards and must be discarded.
	call1.release <- queryReply{res: Result{Items: []Item{viewItem(1, "Kombi A", 100)}, TotalCount: 1}}
	assert.True(t, errors.Is(<-first, ErrSuperseded))

	items := view.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Radyator", items[0].Name)
	assert.Equal(t, Filter{Search: "radyator"}, view.Filter())
}

func TestViewQueryFailureKeepsLoadedItems(t *testing.T) {
	src := &fakeSource{}
	var loaded []Item
	for i := int64(1); i <= 5; i++ {
		loaded = append(loaded, viewItem(i, "Kombi", float64(i)*10))
	}
	src.push(Result{Items: loaded, TotalCount: 8}, nil)
	src.push(Result{}, errors.New("connection reset"))

	view := NewView(src, 5)
	ctx := context.Background()
	require.NoError(t, view.Apply(ctx, Filter{}))
	require.Error(t, view.LoadMore(ctx))

	assert.Equal(t, 5, view.Loaded())
	assert.Equal(t, 8, view.TotalCount())
}

func TestViewSnapshotFindsLoadedRow(t *testing.T) {
	src := &fakeSource{}
	src.push(Result{Items: []Item{viewItem(4, "Vana", 12)}, TotalCount: 1}, nil)

	view := NewView(src, 10)
	require.NoError(t, view.Apply(context.Background(), Filter{}))

	got, ok := view.Snapshot(4)
	require.True(t, ok)
	assert.Equal(t, "Vana", got.Name)

	_, ok = view.Snapshot(99)
	assert.False(t, ok)
}

func TestViewRepriceUpdatesLoadedRows(t *testing.T) {
	src := &fakeSource{}
	usdItem := Item{ID: 1, CompanyID: 1, Name: "Kombi", ListPrice: 100, Currency: "USD"}
	src.push(Result{Items: []Item{usdItem}, TotalCount: 1}, nil)

	view := NewView(src, 10)
	require.NoError(t, view.Apply(context.Background(), Filter{}))

	table, err := fx.NewTable("TRY", map[string]float64{"USD": 42}, time.Now())
	require.NoError(t, err)
	view.Reprice(table)

	items := view.Items()
	require.NotNil(t, items[0].ListPriceBase)
	assert.InDelta(t, 4200, *items[0].ListPriceBase, 1e-9)
}
