// Package badge renders the embeddable support badge as an SVG string.
package badge

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Render produces a two-segment shields-style badge showing the raised
// total to one decimal place.
func Render(raised decimal.Decimal) string {
	amount := raised.StringFixed(1)

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="120" height="20">
  <linearGradient id="b" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="a">
    <rect width="120" height="20" rx="3" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#a)">
    <path fill="#555" d="M0 0h63v20H0z"/>
    <path fill="#9945FF" d="M63 0h57v20H63z"/>
    <path fill="url(#b)" d="M0 0h120v20H0z"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="DejaVu Sans,Verdana,Geneva,sans-serif" font-size="110">
    <text x="325" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="530">Support</text>
    <text x="325" y="140" transform="scale(.1)" textLength="530">Support</text>
    <text x="905" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="470">%[1]s SOL</text>
    <text x="905" y="140" transform="scale(.1)" textLength="470">%[1]s SOL</text>
  </g>
</svg>`, amount)
}
