package document

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/unicode/norm"
)

var replacements = strings.NewReplacer(
	"₹", "Rs.",
	"€", "EUR",
	"£", "GBP",
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"•", "*",
	"…", "...",
	" ", " ",
	"\t", "    ",
	"\r\n", "\n",
	"\r", "\n",
)

// sanitize reduces text to printable ASCII so the core fonts can measure and draw it.
func sanitize(s string) string {
	s = replacements.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case unicode.Is(unicode.Mn, r):
		case r < 0x20 || r == 0x7f:
		case r < 0x80:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// MoneyFormatter renders amounts with locale digit grouping and a currency prefix.
// The integer part is grouped by the locale; the fraction is printed exactly
// as stored.
type MoneyFormatter struct {
	symbol    string
	separator string
	printer   *message.Printer
}

// NewMoneyFormatter parses locale as a BCP 47 tag.
func NewMoneyFormatter(symbol, locale string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	printer := message.NewPrinter(tag)
	return &MoneyFormatter{symbol: symbol, separator: decimalSeparator(printer), printer: printer}, nil
}

// Format returns e.g. "Rs. 25,000" or "Rs. 1,234.5678".
func (m *MoneyFormatter) Format(amount decimal.Decimal) string {
	raw := amount.Abs().String()
	whole, fraction, _ := strings.Cut(raw, ".")

	digits := whole
	if n, err := strconv.ParseUint(whole, 10, 64); err == nil {
		digits = m.printer.Sprint(number.Decimal(n))
	}
	if fraction != "" {
		digits += m.separator + fraction
	}
	if amount.IsNegative() {
		digits = "-" + digits
	}

	if m.symbol == "" {
		return digits
	}
	return m.symbol + " " + digits
}

func decimalSeparator(p *message.Printer) string {
	sample := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))
	sep := strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
	if sep == "" || strings.ContainsAny(sep, "0123456789") {
		return "."
	}
	return sep
}
