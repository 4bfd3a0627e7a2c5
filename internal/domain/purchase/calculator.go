package purchase

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a user-entered numeric string, treating anything
// unparseable as zero. Form inputs arrive as raw text and a half-typed
// value must never abort a recalculation.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LineAmounts holds the derived amounts for a single purchase line
type LineAmounts struct {
	GSTAmount decimal.Decimal
	Amount    decimal.Decimal
}

// ComputeLineAmounts derives the GST amount and line total for one line.
//
//	gstAmount = round2(quantity * rate * gstPercentage / 100)
//	amount    = round2(quantity * rate) + gstAmount
//
// The pre-tax amount is rounded to 2 decimals independently of the GST
// rounding before the two are added; both stored values carry exactly
// 2 decimal places. Rounding is half away from zero. Negative inputs
// propagate through the arithmetic; validation lives with the caller.
func ComputeLineAmounts(quantity, rate, gstPercentage decimal.Decimal) LineAmounts {
	preTax := quantity.Mul(rate)
	gst := preTax.Mul(gstPercentage).Div(hundred).Round(2)
	return LineAmounts{
		GSTAmount: gst,
		Amount:    preTax.Round(2).Add(gst),
	}
}

// ComputeLineAmountsFromStrings derives line amounts from raw form text.
// Unparseable fields coerce to zero per ParseAmount.
func ComputeLineAmountsFromStrings(quantity, rate, gstPercentage string) LineAmounts {
	return ComputeLineAmounts(ParseAmount(quantity), ParseAmount(rate), ParseAmount(gstPercentage))
}

// InvoiceTotals holds the invoice-level aggregate amounts
type InvoiceTotals struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalGSTAmount decimal.Decimal `json:"total_gst_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// AggregateTotals sums invoice totals over the qualifying lines. Lines
// whose item name is empty or whitespace-only are incomplete placeholders
// and are excluded. Per-line values are already rounded, so the grand
// total equals totalAmount + totalGstAmount exactly.
func AggregateTotals(items []LineItem) InvoiceTotals {
	total := decimal.Zero
	gst := decimal.Zero
	for _, item := range items {
		if !item.Qualifies() {
			continue
		}
		total = total.Add(item.Quantity.Mul(item.Rate).Round(2))
		gst = gst.Add(item.GSTAmount)
	}
	total = total.Round(2)
	gst = gst.Round(2)
	return InvoiceTotals{
		TotalAmount:    total,
		TotalGSTAmount: gst,
		GrandTotal:     total.Add(gst).Round(2),
	}
}
