package domain

import (
	"math/big"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// Currency and date display for the pt-BR locale.
const (
	CurrencySymbol = "R$"

	// DateLayout renders dd/MM/yy.
	DateLayout = "02/01/06"
)

var ledgerLocation = loadLedgerLocation()

func loadLedgerLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.UTC
	}
	return loc
}

// LedgerLocation is the zone dates are displayed in.
func LedgerLocation() *time.Location {
	return ledgerLocation
}

// FormatCurrency renders amount as "R$ 1.234,50", with a leading minus for
// negative values.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	fixed := rounded.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(CurrencySymbol)
	b.WriteByte(' ')
	b.WriteString(groupThousands(intPart))
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	var b strings.Builder
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders t as dd/MM/yy in the ledger zone.
func FormatDate(t time.Time) string {
	return t.In(ledgerLocation).Format(DateLayout)
}

// Amount bounds. Values outside them are rejected as not numeric.
const (
	MaxAmountIntegerDigits  = 15
	MaxAmountFractionDigits = 10
	maxAmountTextLength     = 64
)

// ParseAmount parses user or stored amount text. Only dot decimals are
// accepted.
func ParseAmount(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > maxAmountTextLength {
		return decimal.Zero, ErrAmountNotNumeric
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrAmountNotNumeric
	}
	if !amountInBounds(amount) {
		return decimal.Zero, ErrAmountNotNumeric
	}
	return amount, nil
}

// amountInBounds inspects coefficient and exponent only, never rescaling.
func amountInBounds(amount decimal.Decimal) bool {
	coefficient := amount.Coefficient()
	exponent := int64(amount.Exponent())
	if coefficient.Sign() == 0 {
		return exponent >= -MaxAmountFractionDigits && exponent <= MaxAmountIntegerDigits
	}

	// Drop trailing zeros so "12.500" is judged like "12.5"
	ten := big.NewInt(10)
	rem := new(big.Int)
	for {
		quo, r := new(big.Int).QuoRem(coefficient, ten, rem)
		if r.Sign() != 0 {
			break
		}
		coefficient = quo
		exponent++
		if exponent > MaxAmountIntegerDigits {
			return false
		}
	}

	digits := int64(len(coefficient.Text(10)))
	if coefficient.Sign() < 0 {
		digits--
	}
	return exponent >= -MaxAmountFractionDigits && digits+exponent <= MaxAmountIntegerDigits
}
