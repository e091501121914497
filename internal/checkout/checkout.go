package checkout

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"escrowmart-web/internal/backend"
	"escrowmart-web/internal/models"
)

// ErrEmptyCart is returned when checkout is attempted with no items. It is
// raised before any request is issued.
var ErrEmptyCart = errors.New("checkout: no items in cart to checkout")

// EscrowCreator is the slice of the escrow service the processor depends on
type EscrowCreator interface {
	Create(ctx context.Context, sessionID string, req backend.CreateEscrowRequest) (*models.Escrow, error)
}

// SellerFailure reports one seller group whose escrow creation failed
type SellerFailure struct {
	SellerID   string `json:"sellerId"`
	SellerName string `json:"sellerName"`
	Error      string `json:"error"`
}

// Result reports the outcome of a checkout, seller group by seller group.
// Created escrows and failures sit side by side so the caller decides how to
// handle partial success; nothing already persisted server-side is rolled
// back here.
type Result struct {
	Escrows  []models.Escrow `json:"escrows"`
	Failures []SellerFailure `json:"failures"`
}

// AllSucceeded checks if every seller group produced an escrow
func (r *Result) AllSucceeded() bool {
	return len(r.Failures) == 0
}

// Processor turns a flat list of checkout items into one escrow-creation
// request per seller
type Processor struct {
	escrows    EscrowCreator
	escrowDays int
}

// NewProcessor creates a checkout processor. escrowDays of zero means the
// default escrow duration.
func NewProcessor(escrows EscrowCreator, escrowDays int) *Processor {
	if escrowDays <= 0 {
		escrowDays = backend.DefaultEscrowDays
	}
	return &Processor{escrows: escrows, escrowDays: escrowDays}
}

// sellerGroup is one seller's slice of the cart
type sellerGroup struct {
	sellerID   string
	sellerName string
	items      []models.CheckoutItem
}

// groupBySeller partitions items by seller ID, keeping first-seen seller
// order and per-seller item order stable
func groupBySeller(items []models.CheckoutItem) []sellerGroup {
	var groups []sellerGroup
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.SellerID]
		if !ok {
			i = len(groups)
			index[item.SellerID] = i
			groups = append(groups, sellerGroup{
				sellerID:   item.SellerID,
				sellerName: item.SellerName,
			})
		}
		groups[i].items = append(groups[i].items, item)
	}

	return groups
}

// Process issues one escrow-creation request per seller, all concurrently,
// and waits for every request to settle. An empty item list is rejected
// before anything is sent.
func (p *Processor) Process(ctx context.Context, sessionID string, items []models.CheckoutItem) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	groups := groupBySeller(items)

	type outcome struct {
		escrow *models.Escrow
		err    error
	}
	outcomes := make([]outcome, len(groups))

	// Plain Group rather than WithContext: one seller's failure must not
	// cancel the other sellers' in-flight requests.
	var g errgroup.Group
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			req := backend.CreateEscrowRequest{
				SellerID:   group.sellerID,
				EscrowDays: p.escrowDays,
			}
			for _, item := range group.items {
				req.Products = append(req.Products, backend.EscrowProductItem{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}

			escrow, err := p.escrows.Create(ctx, sessionID, req)
			outcomes[i] = outcome{escrow: escrow, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{}
	for i, o := range outcomes {
		if o.err != nil {
			if errors.Is(o.err, backend.ErrUnauthorized) {
				// Session already cleared by the gateway; surface the
				// forced logout instead of a per-seller failure.
				return nil, o.err
			}
			log.Printf("checkout: escrow creation failed for seller %s: %v", groups[i].sellerID, o.err)

			// Show the server's own message when it supplied one.
			msg := o.err.Error()
			var apiErr *backend.APIError
			if errors.As(o.err, &apiErr) {
				msg = apiErr.Message
			}
			result.Failures = append(result.Failures, SellerFailure{
				SellerID:   groups[i].sellerID,
				SellerName: groups[i].sellerName,
				Error:      msg,
			})
			continue
		}
		result.Escrows = append(result.Escrows, *o.escrow)
	}

	return result, nil
}

// SucceededSellers lists the seller IDs whose escrow was created, letting
// the caller clear only those items from the cart on partial success
func (r *Result) SucceededSellers() []string {
	sellers := make([]string, 0, len(r.Escrows))
	for _, e := range r.Escrows {
		sellers = append(sellers, e.SellerID)
	}
	return sellers
}
