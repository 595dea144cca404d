package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fjod/go_pos/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultWidth fits common 58mm thermal printers.
const DefaultWidth = 40

var paymentLabels = map[domain.PaymentMethod]string{
	domain.PaymentCash: "Cash",
	domain.PaymentCard: "Card",
	domain.PaymentQRIS: "QRIS",
}

var amounts = message.NewPrinter(language.English)

// Formatter renders a fixed-width plain-text receipt from an order
// snapshot. Output goes to an external print surface; nothing here
// touches terminal state.
type Formatter struct {
	StoreName string
	Width     int
}

func NewFormatter(storeName string, width int) *Formatter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Formatter{StoreName: storeName, Width: width}
}

// Format produces the printable receipt text for an order.
func (f *Formatter) Format(order *domain.PendingOrder) string {
	var b strings.Builder
	divider := strings.Repeat("-", f.Width)

	b.WriteString(f.center(f.StoreName) + "\n")
	b.WriteString(divider + "\n")
	b.WriteString("Date     : " + order.CreatedAt.Format("2006-01-02 15:04") + "\n")
	b.WriteString("Operator : " + order.Operator + "\n")
	b.WriteString("Payment  : " + paymentLabel(order.PaymentMethod) + "\n")
	b.WriteString(divider + "\n")

	for _, item := range order.Items {
		b.WriteString(f.truncate(item.Name) + "\n")
		left := fmt.Sprintf("  %s  %d x %s", item.SKU, item.Quantity, formatAmount(item.Price))
		b.WriteString(f.line(left, formatAmount(item.LineTotal())) + "\n")
	}

	b.WriteString(divider + "\n")
	b.WriteString(f.line("Subtotal", formatAmount(order.Subtotal)) + "\n")
	if order.Discount > 0 {
		b.WriteString(f.line("Discount", "-"+formatAmount(order.Discount)) + "\n")
	}
	b.WriteString(f.line("TOTAL", formatAmount(order.Total)) + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(fmt.Sprintf("%d item(s)\n", order.ItemCount()))

	return b.String()
}

// line lays out left and right on one row, right-aligned to the width.
// When both sides do not fit, a single space separates them.
func (f *Formatter) line(left, right string) string {
	pad := f.Width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (f *Formatter) center(s string) string {
	width := utf8.RuneCountInString(s)
	if width >= f.Width {
		return s
	}
	return strings.Repeat(" ", (f.Width-width)/2) + s
}

func (f *Formatter) truncate(s string) string {
	if utf8.RuneCountInString(s) <= f.Width {
		return s
	}
	return string([]rune(s)[:f.Width])
}

func paymentLabel(m domain.PaymentMethod) string {
	if label, ok := paymentLabels[m]; ok {
		return label
	}
	return string(m)
}

func formatAmount(v int64) string {
	return amounts.Sprintf("%d", v)
}
