package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/saudecerta/storefront/internal/config"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/saudecerta/storefront/internal/store"
	"github.com/shopspring/decimal"
)

// countryCode is prefixed to phone numbers that do not already carry
// it; wa.me links require the international format.
const countryCode = "55"

type TranscriptData struct {
	OrderID       int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Items         []store.OrderItemRequest
	Subtotal      decimal.Decimal
	ShippingCost  decimal.Decimal
	Total         decimal.Decimal
	Address       models.Address
	PixCode       string
	CreatedAt     time.Time
}

// BuildTranscript renders the order confirmation message sent over
// WhatsApp: customer, delivery address, line items, financial summary
// and payment instructions, signed with the store's contact details.
func BuildTranscript(data TranscriptData, storeCfg config.StoreConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎉 *Confirmação de Pedido - %s*\n\n", storeCfg.Name)
	fmt.Fprintf(&b, "📦 *Pedido #%d*\n", data.OrderID)
	fmt.Fprintf(&b, "📅 %s às %s\n\n", data.CreatedAt.Format("02/01/2006"), data.CreatedAt.Format("15:04:05"))

	b.WriteString("👤 *Dados do Cliente*\n")
	fmt.Fprintf(&b, "Nome: %s\n", data.CustomerName)
	fmt.Fprintf(&b, "Telefone: %s\n", data.CustomerPhone)
	fmt.Fprintf(&b, "Email: %s\n\n", data.CustomerEmail)

	b.WriteString("📍 *Endereço de Entrega*\n")
	fmt.Fprintf(&b, "%s, %s\n", data.Address.Street, data.Address.Number)
	if data.Address.Complement != "" {
		fmt.Fprintf(&b, "%s\n", data.Address.Complement)
	}
	fmt.Fprintf(&b, "%s, %s\n", data.Address.City, data.Address.State)
	fmt.Fprintf(&b, "CEP: %s\n\n", data.Address.ZipCode)

	b.WriteString("🛒 *Itens do Pedido*\n")
	for i, item := range data.Items {
		itemTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%d. Produto #%d\n", i+1, item.ProductID)
		fmt.Fprintf(&b, "   Quantidade: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Preço: R$ %s\n", item.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: R$ %s\n", itemTotal.StringFixed(2))
	}

	b.WriteString("\n💰 *Resumo Financeiro*\n")
	fmt.Fprintf(&b, "Subtotal: R$ %s\n", data.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Frete: R$ %s\n", data.ShippingCost.StringFixed(2))
	fmt.Fprintf(&b, "*Total: R$ %s*\n\n", data.Total.StringFixed(2))

	b.WriteString("💳 *Forma de Pagamento*\n")
	b.WriteString("PIX\n")
	if data.PixCode != "" {
		fmt.Fprintf(&b, "Código: %s\n", data.PixCode)
	}
	b.WriteString("Status: Aguardando pagamento\n")

	b.WriteString("\n✅ Seu pedido foi registrado com sucesso!\n")
	b.WriteString("Você receberá uma atualização assim que o pagamento for confirmado.\n\n")
	b.WriteString("📞 Dúvidas? Entre em contato conosco!\n")
	fmt.Fprintf(&b, "Telefone: %s\n", storeCfg.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", storeCfg.ContactEmail)
	fmt.Fprintf(&b, "Obrigado por escolher a %s! 💚", storeCfg.Name)

	return b.String()
}

// DeepLink builds a wa.me URL that opens a chat with phone, pre-filled
// with message.
func DeepLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalizePhone(phone), escapeText(message))
}

// normalizePhone strips formatting and prefixes the country code at
// most once.
func normalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(digits, countryCode) {
		return digits
	}
	return countryCode + digits
}

// escapeText percent-encodes like browsers do for query text: spaces
// become %20, not '+'.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatPhoneBR renders an 11-digit number as (DD) NNNNN-NNNN for
// display; anything else passes through untouched.
func FormatPhoneBR(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 11 {
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	}
	return phone
}
