package cli

import (
	"math/big"
	"strconv"
	"strings"
	"time"
)

// formatAddress shortens an address to its prefix and suffix, keeping the
// 0x marker: 0x1234...5678.
func formatAddress(address string, length int) string {
	if address == "" {
		return ""
	}
	if length <= 0 {
		length = 4
	}
	if len(address) <= 2*length+2 {
		return address
	}
	return address[:length+2] + "..." + address[len(address)-length:]
}

// formatNumber groups the integer part with commas and keeps at most three
// fraction digits.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	hasFrac := frac != ""

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if b.String() == "0" {
		return "0"
	}
	return sign + b.String()
}

// formatNumberString is formatNumber for decimal strings. Non-numeric input
// is returned unchanged.
func formatNumberString(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return formatNumber(v)
}

var weiPerEther = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// formatEther converts a wei amount to ether with the given number of decimals.
func formatEther(wei string, decimals int) string {
	r, ok := new(big.Rat).SetString(wei)
	if !ok {
		return wei
	}
	return r.Quo(r, weiPerEther).FloatString(decimals)
}

// formatDate renders an API timestamp in UTC. Unparseable input is
// returned unchanged.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999Z07:00", "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02 15:04:05 UTC")
		}
	}
	return s
}
