package checkout

import "github.com/shopspring/decimal"

// Method selects how an assembled order gets settled. The two
// implementations carry the branch-specific inputs, so a caller cannot
// pass a card payload to the transfer branch or vice versa.
type Method interface {
	methodName() string
}

// Card settles through the hosted checkout gateway. Origin is the
// storefront origin the customer is redirected back to.
type Card struct {
	Origin string
}

func (Card) methodName() string { return "card" }

// InstantTransfer settles by PIX: the customer receives a payment code
// and a WhatsApp deep link for manual confirmation.
type InstantTransfer struct {
	ShippingCost  decimal.Decimal
	CustomerPhone string
}

func (InstantTransfer) methodName() string { return "pix" }
