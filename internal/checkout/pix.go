package checkout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BR Code EMV field IDs as registered with the central bank spec.
const (
	idPayloadFormat       = "00"
	idMerchantAccountInfo = "26"
	idMerchantCategory    = "52"
	idCurrency            = "53"
	idAmount              = "54"
	idCountryCode         = "58"
	idMerchantName        = "59"
	idMerchantCity        = "60"
	idAdditionalData      = "62"
	idCRC                 = "63"

	idGUI    = "00"
	idPixKey = "01"
	idTxID   = "05"

	pixGUI      = "br.gov.bcb.pix"
	currencyBRL = "986"
)

// PixCharge is the static payment reference the instant-transfer
// branch hands to the customer.
type PixCharge struct {
	// TxID ties the payment back to this order on the bank statement.
	TxID string
	// BRCode is the EMV "copia e cola" payload the customer pastes
	// into their banking app.
	BRCode string
}

// NewPixCharge builds a BR Code for one order. Each call derives a
// fresh transaction id, so two checkouts of the same amount never
// share a reference.
func NewPixCharge(pixKey, merchantName, merchantCity string, amount decimal.Decimal) PixCharge {
	txid := strings.ReplaceAll(uuid.NewString(), "-", "")[:25]

	var b strings.Builder
	writeTLV(&b, idPayloadFormat, "01")

	var account strings.Builder
	writeTLV(&account, idGUI, pixGUI)
	writeTLV(&account, idPixKey, pixKey)
	writeTLV(&b, idMerchantAccountInfo, account.String())

	writeTLV(&b, idMerchantCategory, "0000")
	writeTLV(&b, idCurrency, currencyBRL)
	writeTLV(&b, idAmount, amount.StringFixed(2))
	writeTLV(&b, idCountryCode, "BR")
	writeTLV(&b, idMerchantName, truncate(merchantName, 25))
	writeTLV(&b, idMerchantCity, truncate(merchantCity, 15))

	var additional strings.Builder
	writeTLV(&additional, idTxID, txid)
	writeTLV(&b, idAdditionalData, additional.String())

	// The CRC covers everything up to and including its own id+length.
	payload := b.String() + idCRC + "04"
	payload += fmt.Sprintf("%04X", crc16CCITT(payload))

	return PixCharge{TxID: txid, BRCode: payload}
}

// writeTLV frames one EMV field. Lengths are two decimal digits, so a
// value over 99 bytes cannot be encoded and is clamped to keep the
// payload parseable.
func writeTLV(b *strings.Builder, id, value string) {
	if len(value) > maxTLVLen {
		value = value[:maxTLVLen]
	}
	fmt.Fprintf(b, "%s%02d%s", id, len(value), value)
}

const maxTLVLen = 99

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := 0
	for i := range s {
		if i > max {
			break
		}
		cut = i
	}
	return s[:cut]
}

// crc16CCITT is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the
// checksum the BR Code spec mandates.
func crc16CCITT(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
