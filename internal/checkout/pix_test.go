package checkout

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixChargePayload(t *testing.T) {
	amount, _ := decimal.NewFromString("134.70")
	charge := NewPixCharge("pix@saudecerta.com.br", "Farmacia Saude Certa", "Cabo de Santo Agostinho", amount)

	assert.True(t, len(charge.BRCode) > 0)
	assert.Equal(t, "000201", charge.BRCode[:6], "payload format indicator")
	assert.Contains(t, charge.BRCode, "br.gov.bcb.pix")
	assert.Contains(t, charge.BRCode, "pix@saudecerta.com.br")
	assert.Contains(t, charge.BRCode, "134.70")
	assert.Contains(t, charge.BRCode, "5802BR")
	assert.Contains(t, charge.BRCode, charge.TxID)
	assert.Len(t, charge.TxID, 25)
}

func TestNewPixChargeCRC(t *testing.T) {
	charge := NewPixCharge("key", "Loja", "Recife", decimal.NewFromInt(10))

	require.True(t, len(charge.BRCode) > 8)
	body := charge.BRCode[:len(charge.BRCode)-4]
	checksum := charge.BRCode[len(charge.BRCode)-4:]

	assert.Equal(t, fmt.Sprintf("%04X", crc16CCITT(body)), checksum)
}

func TestNewPixChargeUniqueTxIDs(t *testing.T) {
	amount := decimal.NewFromInt(10)
	a := NewPixCharge("key", "Loja", "Recife", amount)
	b := NewPixCharge("key", "Loja", "Recife", amount)

	assert.NotEqual(t, a.TxID, b.TxID, "same amount must still yield distinct references")
	assert.NotEqual(t, a.BRCode, b.BRCode)
}

func TestNewPixChargeTruncatesMerchant(t *testing.T) {
	charge := NewPixCharge("key",
		"Farmacia Com Um Nome Extremamente Longo Demais",
		"Cabo de Santo Agostinho", decimal.NewFromInt(10))

	assert.Contains(t, charge.BRCode, "Farmacia Com Um Nome Extr")
	assert.NotContains(t, charge.BRCode, "Extremamente")
	// City capped at 15 characters.
	assert.Contains(t, charge.BRCode, "Cabo de Santo A")
	assert.NotContains(t, charge.BRCode, "Agostinho")
}

func TestNewPixChargeTruncatesOnRuneBoundary(t *testing.T) {
	// "Farmacia Saude Certa Ltd" is 24 bytes, so the following "á"
	// straddles the 25-byte merchant name cap and must be dropped
	// whole, not split.
	charge := NewPixCharge("key", "Farmacia Saude Certa Ltdá Filial", "São João", decimal.NewFromInt(10))

	assert.True(t, utf8.ValidString(charge.BRCode), "payload must stay valid UTF-8")
	assert.Contains(t, charge.BRCode, "5924Farmacia Saude Certa Ltd")
	assert.NotContains(t, charge.BRCode, "Ltdá")
}

func TestNewPixChargeClampsOversizedKey(t *testing.T) {
	charge := NewPixCharge(strings.Repeat("k", 120), "Loja", "Recife", decimal.NewFromInt(10))

	// Every length stays two digits, so the payload still parses.
	assert.NotContains(t, charge.BRCode, fmt.Sprintf("%03d", 120))
	assert.Contains(t, charge.BRCode, "01"+"99"+strings.Repeat("k", 99))

	body := charge.BRCode[:len(charge.BRCode)-4]
	checksum := charge.BRCode[len(charge.BRCode)-4:]
	assert.Equal(t, fmt.Sprintf("%04X", crc16CCITT(body)), checksum)
}

func TestCRC16CCITTKnownVector(t *testing.T) {
	// Standard check value for CRC-16/CCITT-FALSE.
	assert.Equal(t, uint16(0x29B1), crc16CCITT("123456789"))
}
