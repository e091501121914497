package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escrowmart-web/internal/backend"
	"escrowmart-web/internal/models"
)

// fakeEscrows records creation requests and answers per seller
type fakeEscrows struct {
	mu       sync.Mutex
	requests []backend.CreateEscrowRequest
	fail     map[string]error
}

func (f *fakeEscrows) Create(ctx context.Context, sessionID string, req backend.CreateEscrowRequest) (*models.Escrow, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := f.fail[req.SellerID]; err != nil {
		return nil, err
	}

	return &models.Escrow{
		ID:       "escrow-" + req.SellerID,
		SellerID: req.SellerID,
		Status:   models.TransactionStatusPending,
	}, nil
}

func (f *fakeEscrows) requestFor(sellerID string) *backend.CreateEscrowRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		if f.requests[i].SellerID == sellerID {
			return &f.requests[i]
		}
	}
	return nil
}

func checkoutItems() []models.CheckoutItem {
	return []models.CheckoutItem{
		{ProductID: "p1", SellerID: "s1", SellerName: "Alice", Price: 10, Quantity: 2},
		{ProductID: "p2", SellerID: "s1", SellerName: "Alice", Price: 5, Quantity: 1},
		{ProductID: "p3", SellerID: "s2", SellerName: "Bob", Price: 20, Quantity: 1},
	}
}

func TestProcessEmptyCartRejected(t *testing.T) {
	escrows := &fakeEscrows{}
	p := NewProcessor(escrows, 0)

	result, err := p.Process(context.Background(), "sid", nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)
	assert.Empty(t, escrows.requests, "no request may be issued for an empty cart")
}

func TestProcessGroupsBySeller(t *testing.T) {
	escrows := &fakeEscrows{}
	p := NewProcessor(escrows, 0)

	result, err := p.Process(context.Background(), "sid", checkoutItems())
	require.NoError(t, err)

	require.Len(t, escrows.requests, 2, "one request per seller")

	s1 := escrows.requestFor("s1")
	require.NotNil(t, s1)
	require.Len(t, s1.Products, 2)
	assert.Equal(t, "p1", s1.Products[0].ProductID)
	assert.Equal(t, 2, s1.Products[0].Quantity)
	assert.Equal(t, "p2", s1.Products[1].ProductID)
	assert.Equal(t, 1, s1.Products[1].Quantity)
	assert.Equal(t, backend.DefaultEscrowDays, s1.EscrowDays)

	s2 := escrows.requestFor("s2")
	require.NotNil(t, s2)
	require.Len(t, s2.Products, 1)
	assert.Equal(t, "p3", s2.Products[0].ProductID)

	assert.True(t, result.AllSucceeded())
	assert.Len(t, result.Escrows, 2)
	assert.Empty(t, result.Failures)
}

func TestProcessSettlesAllOnPartialFailure(t *testing.T) {
	escrows := &fakeEscrows{fail: map[string]error{"s2": errors.New("insufficient funds")}}
	p := NewProcessor(escrows, 0)

	result, err := p.Process(context.Background(), "sid", checkoutItems())
	require.NoError(t, err)

	// Both requests went out despite one failing
	assert.Len(t, escrows.requests, 2)

	assert.False(t, result.AllSucceeded())
	require.Len(t, result.Escrows, 1)
	assert.Equal(t, "s1", result.Escrows[0].SellerID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "s2", result.Failures[0].SellerID)
	assert.Equal(t, "Bob", result.Failures[0].SellerName)
	assert.Contains(t, result.Failures[0].Error, "insufficient funds")

	assert.Equal(t, []string{"s1"}, result.SucceededSellers())
}

func TestProcessUnauthorizedPropagates(t *testing.T) {
	escrows := &fakeEscrows{fail: map[string]error{"s1": backend.ErrUnauthorized}}
	p := NewProcessor(escrows, 0)

	result, err := p.Process(context.Background(), "sid", checkoutItems())

	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Nil(t, result)
}

func TestGroupBySellerStableOrder(t *testing.T) {
	items := []models.CheckoutItem{
		{ProductID: "a", SellerID: "s3"},
		{ProductID: "b", SellerID: "s1"},
		{ProductID: "c", SellerID: "s3"},
		{ProductID: "d", SellerID: "s2"},
		{ProductID: "e", SellerID: "s1"},
	}

	groups := groupBySeller(items)
	require.Len(t, groups, 3)

	assert.Equal(t, "s3", groups[0].sellerID)
	assert.Equal(t, []string{"a", "c"}, productIDs(groups[0].items))
	assert.Equal(t, "s1", groups[1].sellerID)
	assert.Equal(t, []string{"b", "e"}, productIDs(groups[1].items))
	assert.Equal(t, "s2", groups[2].sellerID)
	assert.Equal(t, []string{"d"}, productIDs(groups[2].items))
}

func productIDs(items []models.CheckoutItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
