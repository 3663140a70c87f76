// Package checkout routes an assembled order to its settlement
// branch: hosted card checkout or PIX instant transfer with manual
// WhatsApp confirmation.
package checkout

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/saudecerta/storefront/internal/config"
	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/saudecerta/storefront/internal/store"
	"github.com/shopspring/decimal"
)

type Router struct {
	db       *sql.DB
	gateway  Gateway
	storeCfg config.StoreConfig
}

func NewRouter(db *sql.DB, gateway Gateway, storeCfg config.StoreConfig) *Router {
	return &Router{
		db:       db,
		gateway:  gateway,
		storeCfg: storeCfg,
	}
}

type Request struct {
	UserID    int64
	AddressID int64
	Items     []store.OrderItemRequest
	Method    Method
}

// Result is one of CardResult or InstantTransferResult, matching the
// method the request carried.
type Result interface {
	resultMethod() string
}

type CardResult struct {
	OrderID     int64           `json:"order_id"`
	CheckoutURL string          `json:"checkout_url"`
	Total       decimal.Decimal `json:"total"`
}

func (CardResult) resultMethod() string { return "card" }

type InstantTransferResult struct {
	OrderID          int64           `json:"order_id"`
	PaymentReference string          `json:"payment_reference"`
	TxID             string          `json:"tx_id"`
	WhatsAppLink     string          `json:"whatsapp_link"`
	Transcript       string          `json:"message"`
	Total            decimal.Decimal `json:"total"`
}

func (InstantTransferResult) resultMethod() string { return "pix" }

// Checkout validates the cart, assembles the order and settles it
// through the chosen branch. All validation happens before anything is
// persisted; a gateway failure leaves the assembled order pending and
// retryable via PayOrder.
func (r *Router) Checkout(ctx context.Context, req Request) (Result, error) {
	if err := store.ValidateItems(req.Items); err != nil {
		return nil, err
	}

	shipping := decimal.Zero
	switch m := req.Method.(type) {
	case Card:
		// The hosted checkout charges items only; no shipping line.
	case InstantTransfer:
		if m.CustomerPhone == "" {
			return nil, database.ErrMissingPhone
		}
		if !m.ShippingCost.IsPositive() {
			return nil, database.ErrMissingShipping
		}
		shipping = m.ShippingCost
	default:
		return nil, fmt.Errorf("unsupported payment method %T", req.Method)
	}

	user, err := store.GetUser(ctx, r.db, req.UserID)
	if err != nil {
		return nil, err
	}
	addr, err := store.GetAddress(ctx, r.db, req.AddressID, req.UserID)
	if err != nil {
		return nil, err
	}

	order, err := store.CreateOrder(ctx, r.db, store.CreateOrderRequest{
		UserID:       req.UserID,
		AddressID:    req.AddressID,
		Items:        req.Items,
		ShippingCost: shipping,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble order: %w", err)
	}

	return r.settle(ctx, order, user, addr, req.Items, req.Method)
}

// PayOrder re-runs settlement for an order that is already assembled
// but still pending, so a failed gateway call does not force the
// customer to recreate the order.
func (r *Router) PayOrder(ctx context.Context, userID, orderID int64, method Method) (Result, error) {
	order, err := store.GetOrder(ctx, r.db, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, database.ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, order.Status, database.ErrOrderNotPayable)
	}

	if m, ok := method.(InstantTransfer); ok {
		if m.CustomerPhone == "" {
			return nil, database.ErrMissingPhone
		}
		if !m.ShippingCost.IsPositive() {
			return nil, database.ErrMissingShipping
		}
	}

	user, err := store.GetUser(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	addr, err := store.GetAddress(ctx, r.db, order.AddressID, userID)
	if err != nil {
		return nil, err
	}

	items := make([]store.OrderItemRequest, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, store.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return r.settle(ctx, order, user, addr, items, method)
}

func (r *Router) settle(ctx context.Context, order *models.Order, user *models.User,
	addr *models.Address, items []store.OrderItemRequest, method Method) (Result, error) {

	switch m := method.(type) {
	case Card:
		return r.settleCard(ctx, order, user, addr, items, m)
	case InstantTransfer:
		return r.settleInstantTransfer(order, user, addr, items, m)
	default:
		return nil, fmt.Errorf("unsupported payment method %T", method)
	}
}

func (r *Router) settleCard(ctx context.Context, order *models.Order, user *models.User,
	addr *models.Address, items []store.OrderItemRequest, m Card) (Result, error) {

	lineItems := make([]SessionLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, SessionLineItem{
			Name:        fmt.Sprintf("Produto #%d", item.ProductID),
			Description: fmt.Sprintf("Quantidade: %d", item.Quantity),
			UnitAmount:  item.Price.Shift(2).Round(0).IntPart(),
			Quantity:    int64(item.Quantity),
		})
	}

	url, err := r.gateway.CreateSession(ctx, SessionParams{
		Items:             lineItems,
		SuccessURL:        m.Origin + "/checkout-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         m.Origin + "/cart",
		CustomerEmail:     user.Email,
		ClientReferenceID: strconv.FormatInt(user.ID, 10),
		Metadata: map[string]string{
			"order_id":       strconv.FormatInt(order.ID, 10),
			"user_id":        strconv.FormatInt(user.ID, 10),
			"address_id":     strconv.FormatInt(addr.ID, 10),
			"customer_email": user.Email,
			"customer_name":  user.Name,
		},
	})
	if err != nil {
		// The order is persisted and stays pending; only payment
		// setup failed.
		return nil, fmt.Errorf("%w: %v", database.ErrPaymentGateway, err)
	}

	return CardResult{
		OrderID:     order.ID,
		CheckoutURL: url,
		Total:       order.TotalAmount,
	}, nil
}

func (r *Router) settleInstantTransfer(order *models.Order, user *models.User,
	addr *models.Address, items []store.OrderItemRequest, m InstantTransfer) (Result, error) {

	// A card-assembled order was totalled without shipping; settling
	// it over instant transfer would charge less than items plus
	// freight, so the amounts must reconcile before a reference is
	// issued.
	subtotal := store.Subtotal(items)
	if !order.TotalAmount.Equal(subtotal.Add(m.ShippingCost)) {
		return nil, fmt.Errorf("order %d total %s does not cover items plus shipping: %w",
			order.ID, order.TotalAmount.StringFixed(2), database.ErrOrderNotPayable)
	}

	charge := NewPixCharge(r.storeCfg.PixKey, r.storeCfg.Name, r.storeCfg.City, order.TotalAmount)

	transcript := BuildTranscript(TranscriptData{
		OrderID:       order.ID,
		CustomerName:  user.Name,
		CustomerPhone: m.CustomerPhone,
		CustomerEmail: user.Email,
		Items:         items,
		Subtotal:      subtotal,
		ShippingCost:  m.ShippingCost,
		Total:         order.TotalAmount,
		Address:       *addr,
		PixCode:       charge.BRCode,
		CreatedAt:     order.CreatedAt,
	}, r.storeCfg)

	return InstantTransferResult{
		OrderID:          order.ID,
		PaymentReference: charge.BRCode,
		TxID:             charge.TxID,
		WhatsAppLink:     DeepLink(m.CustomerPhone, transcript),
		Transcript:       transcript,
		Total:            order.TotalAmount,
	}, nil
}
