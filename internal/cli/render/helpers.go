package render

import (
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatAmount renders a base-unit amount in whole token units
func FormatAmount(amount *big.Int, decimals uint8, symbol string) string {
	if amount == nil {
		return "-"
	}
	value := decimal.NewFromBigInt(amount, -int32(decimals)).String()
	if symbol == "" {
		return value
	}
	return value + " " + symbol
}

// FormatAssetAmount renders amount in units of asset
func FormatAssetAmount(amount *big.Int, asset domain.Asset) string {
	return FormatAmount(amount, asset.Decimals, asset.Symbol)
}

// FormatNative renders a wei amount in ether
func FormatNative(wei *big.Int) string {
	return FormatAmount(wei, 18, "ETH")
}

// FormatStatus renders a transaction status with its color
func FormatStatus(status domain.TransactionStatus) string {
	label := cases.Title(language.English).String(strings.ReplaceAll(string(status), "_", " "))
	if label == "" {
		label = "Unknown"
	}

	switch {
	case status.IsSuccess():
		return color.New(color.FgGreen, color.Bold).Sprint("✅ " + label)
	case status == domain.StatusPartialSuccess, status == domain.StatusNeedsGas:
		return color.New(color.FgYellow, color.Bold).Sprint("⚠️  " + label)
	case status.IsNotFound():
		return color.New(color.FgRed).Sprint("❔ " + label)
	default:
		return color.New(color.FgCyan).Sprint("⏳ " + label)
	}
}

// shortHex truncates long hex strings for tables
func shortHex(s string, keep int) string {
	if len(s) <= 2+2*keep {
		return s
	}
	return s[:2+keep] + "…" + s[len(s)-keep:]
}
