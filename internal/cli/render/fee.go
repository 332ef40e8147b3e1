package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/hookroute/internal/domain"
)

// FeeView is the exported form of a relay fee quote
type FeeView struct {
	Asset      string `json:"asset" yaml:"asset"`
	DstEID     uint32 `json:"dstEid" yaml:"dstEid"`
	NativeFee  string `json:"nativeFee" yaml:"nativeFee"`
	LzTokenFee string `json:"lzTokenFee" yaml:"lzTokenFee"`
}

// FeeRenderer renders relay fee quotes
type FeeRenderer struct {
	out    io.Writer
	format Format
}

// NewFeeRenderer creates a new fee renderer
func NewFeeRenderer(out io.Writer, format Format) *FeeRenderer {
	return &FeeRenderer{
		out:    out,
		format: format,
	}
}

// Render writes the quote for relaying asset to dstEID
func (r *FeeRenderer) Render(asset domain.Asset, dstEID uint32, quote *domain.FeeQuote) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, FeeView{
			Asset:      asset.Address.Hex(),
			DstEID:     dstEID,
			NativeFee:  bigString(quote.NativeFee),
			LzTokenFee: bigString(quote.LzTokenFee),
		})
	}

	fmt.Fprintf(r.out, "Relay fee for %s to eid %d:\n", asset.Symbol, dstEID)
	fmt.Fprintf(r.out, "  Native:   %s\n", FormatNative(quote.NativeFee))
	fmt.Fprintf(r.out, "  LZ token: %s\n", FormatAmount(quote.LzTokenFee, 18, "ZRO"))
	return nil
}
