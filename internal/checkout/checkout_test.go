package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saudecerta/storefront/internal/config"
	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/saudecerta/storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	called bool
	params SessionParams
	url    string
	err    error
}

func (f *fakeGateway) CreateSession(ctx context.Context, params SessionParams) (string, error) {
	f.called = true
	f.params = params
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		Name:         "Farmacia Saude Certa",
		City:         "Cabo de Santo Agostinho",
		ZipCode:      "54520-235",
		Phone:        "(81) 93816-0087",
		ContactEmail: "contato@saudecerta.com.br",
		PixKey:       "pix@saudecerta.com.br",
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testItems(t *testing.T) []store.OrderItemRequest {
	return []store.OrderItemRequest{
		{ProductID: 1, Quantity: 1, Price: mustDecimal(t, "29.90")},
		{ProductID: 2, Quantity: 2, Price: mustDecimal(t, "49.90")},
	}
}

func TestSubtotalDecimalExact(t *testing.T) {
	subtotal := store.Subtotal(testItems(t))
	assert.Equal(t, "129.70", subtotal.StringFixed(2))
	assert.True(t, subtotal.Equal(mustDecimal(t, "129.70")))
}

func TestCheckoutEmptyCartRejectedBeforeGateway(t *testing.T) {
	gateway := &fakeGateway{url: "https://checkout.example/s"}
	r := NewRouter(nil, gateway, testStoreConfig())

	_, err := r.Checkout(context.Background(), Request{
		UserID:    1,
		AddressID: 1,
		Items:     nil,
		Method:    Card{Origin: "http://localhost:3000"},
	})

	require.ErrorIs(t, err, database.ErrEmptyCart)
	assert.False(t, gateway.called, "gateway must not be reached for an empty cart")
}

func TestCheckoutNonPositiveQuantityRejected(t *testing.T) {
	gateway := &fakeGateway{}
	r := NewRouter(nil, gateway, testStoreConfig())

	_, err := r.Checkout(context.Background(), Request{
		UserID:    1,
		AddressID: 1,
		Items: []store.OrderItemRequest{
			{ProductID: 1, Quantity: 0, Price: mustDecimal(t, "10.00")},
		},
		Method: Card{Origin: "http://localhost:3000"},
	})

	require.ErrorIs(t, err, database.ErrInvalidQuantity)
	assert.False(t, gateway.called)
}

func TestCheckoutInstantTransferRequiresPhone(t *testing.T) {
	r := NewRouter(nil, &fakeGateway{}, testStoreConfig())

	_, err := r.Checkout(context.Background(), Request{
		UserID:    1,
		AddressID: 1,
		Items:     testItems(t),
		Method: InstantTransfer{
			ShippingCost:  decimal.NewFromInt(5),
			CustomerPhone: "",
		},
	})

	require.ErrorIs(t, err, database.ErrMissingPhone)
}

func TestCheckoutInstantTransferRequiresShipping(t *testing.T) {
	r := NewRouter(nil, &fakeGateway{}, testStoreConfig())

	_, err := r.Checkout(context.Background(), Request{
		UserID:    1,
		AddressID: 1,
		Items:     testItems(t),
		Method: InstantTransfer{
			CustomerPhone: "(81) 98765-4321",
		},
	})

	require.ErrorIs(t, err, database.ErrMissingShipping)
}

func settleFixture(t *testing.T) (*models.Order, *models.User, *models.Address) {
	t.Helper()

	order := &models.Order{
		ID:          42,
		UserID:      7,
		TotalAmount: mustDecimal(t, "134.70"),
		Status:      models.OrderStatusPending,
		AddressID:   3,
		CreatedAt:   time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
	}
	user := &models.User{
		ID:    7,
		Name:  "Maria Silva",
		Email: "maria@example.com",
	}
	addr := &models.Address{
		ID:      3,
		UserID:  7,
		Street:  "Rua das Flores",
		Number:  "120",
		City:    "Cabo de Santo Agostinho",
		State:   "PE",
		ZipCode: "54520-235",
	}
	return order, user, addr
}

func TestSettleCardBuildsSession(t *testing.T) {
	gateway := &fakeGateway{url: "https://checkout.stripe.example/cs_test_123"}
	r := NewRouter(nil, gateway, testStoreConfig())

	order, user, addr := settleFixture(t)

	result, err := r.settle(context.Background(), order, user, addr, testItems(t),
		Card{Origin: "https://loja.example"})
	require.NoError(t, err)

	card, ok := result.(CardResult)
	require.True(t, ok, "expected CardResult, got %T", result)
	assert.Equal(t, int64(42), card.OrderID)
	assert.Equal(t, "https://checkout.stripe.example/cs_test_123", card.CheckoutURL)

	require.True(t, gateway.called)
	require.Len(t, gateway.params.Items, 2)
	assert.Equal(t, "Produto #1", gateway.params.Items[0].Name)
	assert.Equal(t, int64(2990), gateway.params.Items[0].UnitAmount)
	assert.Equal(t, int64(1), gateway.params.Items[0].Quantity)
	assert.Equal(t, int64(4990), gateway.params.Items[1].UnitAmount)
	assert.Equal(t, int64(2), gateway.params.Items[1].Quantity)

	assert.Equal(t, "https://loja.example/checkout-success?session_id={CHECKOUT_SESSION_ID}", gateway.params.SuccessURL)
	assert.Equal(t, "https://loja.example/cart", gateway.params.CancelURL)
	assert.Equal(t, "maria@example.com", gateway.params.CustomerEmail)
	assert.Equal(t, "7", gateway.params.ClientReferenceID)
	assert.Equal(t, "42", gateway.params.Metadata["order_id"])
	assert.Equal(t, "3", gateway.params.Metadata["address_id"])
	assert.Equal(t, "Maria Silva", gateway.params.Metadata["customer_name"])
}

func TestSettleCardGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("stripe is down")}
	r := NewRouter(nil, gateway, testStoreConfig())

	order, user, addr := settleFixture(t)

	_, err := r.settle(context.Background(), order, user, addr, testItems(t),
		Card{Origin: "https://loja.example"})

	require.ErrorIs(t, err, database.ErrPaymentGateway)
}

func TestSettleInstantTransfer(t *testing.T) {
	r := NewRouter(nil, &fakeGateway{}, testStoreConfig())

	order, user, addr := settleFixture(t)

	result, err := r.settle(context.Background(), order, user, addr, testItems(t),
		InstantTransfer{
			ShippingCost:  decimal.NewFromInt(5),
			CustomerPhone: "(81) 98765-4321",
		})
	require.NoError(t, err)

	transfer, ok := result.(InstantTransferResult)
	require.True(t, ok, "expected InstantTransferResult, got %T", result)

	assert.Equal(t, int64(42), transfer.OrderID)
	assert.True(t, transfer.Total.Equal(mustDecimal(t, "134.70")))

	assert.Contains(t, transfer.Transcript, "R$ 134.70")
	assert.Contains(t, transfer.Transcript, "Subtotal: R$ 129.70")
	assert.Contains(t, transfer.Transcript, "Frete: R$ 5.00")
	assert.Contains(t, transfer.Transcript, "Pedido #42")
	assert.Contains(t, transfer.Transcript, "Rua das Flores, 120")

	assert.Contains(t, transfer.WhatsAppLink, "https://wa.me/5581987654321?text=")
	assert.NotEmpty(t, transfer.TxID)
	assert.Contains(t, transfer.PaymentReference, "br.gov.bcb.pix")
}

func TestSettleInstantTransferRejectsMismatchedTotal(t *testing.T) {
	r := NewRouter(nil, &fakeGateway{}, testStoreConfig())

	order, user, addr := settleFixture(t)
	// Totalled without freight, as the card flow assembles orders.
	order.TotalAmount = mustDecimal(t, "129.70")

	_, err := r.settle(context.Background(), order, user, addr, testItems(t),
		InstantTransfer{
			ShippingCost:  decimal.NewFromInt(5),
			CustomerPhone: "(81) 98765-4321",
		})

	require.ErrorIs(t, err, database.ErrOrderNotPayable)
}

func TestSettleInstantTransferPhoneAlreadyPrefixed(t *testing.T) {
	r := NewRouter(nil, &fakeGateway{}, testStoreConfig())

	order, user, addr := settleFixture(t)

	result, err := r.settle(context.Background(), order, user, addr, testItems(t),
		InstantTransfer{
			ShippingCost:  decimal.NewFromInt(5),
			CustomerPhone: "+55 (81) 98765-4321",
		})
	require.NoError(t, err)

	transfer := result.(InstantTransferResult)
	assert.Contains(t, transfer.WhatsAppLink, "wa.me/5581987654321?")
	assert.NotContains(t, transfer.WhatsAppLink, "wa.me/555581987654321")
}
