package cart

import (
	"fmt"
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// CurrencyFormatter formats amounts for the cart table
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
}

// NewCurrencyFormatter builds a formatter for a BCP 47 locale and an ISO 4217 code
func NewCurrencyFormatter(locale, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}

	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		symbol:  symbol,
	}, nil
}

// Format renders amount with the currency symbol and two decimals
func (f *CurrencyFormatter) Format(amount float64) string {
	if amount < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.2f", -amount)
	}
	return f.symbol + f.printer.Sprintf("%.2f", amount)
}

// Row is one line of the cart table
type Row struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	PriceText    string  `json:"price_text"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
	SubtotalText string  `json:"subtotal_text"`
}

// ViewModel is everything the badge and the cart table display
type ViewModel struct {
	Badge        string  `json:"badge"`
	Count        int     `json:"count"`
	Rows         []Row   `json:"rows"`
	Subtotal     float64 `json:"subtotal"`
	SubtotalText string  `json:"subtotal_text"`
	Total        float64 `json:"total"`
	TotalText    string  `json:"total_text"`
	Empty        bool    `json:"empty"`
}

// Renderer turns a cart into a ViewModel. It has no side effects.
type Renderer struct {
	formatter *CurrencyFormatter
}

// NewRenderer creates a renderer using formatter for money values
func NewRenderer(formatter *CurrencyFormatter) *Renderer {
	return &Renderer{formatter: formatter}
}

var defaultRenderer = func() *Renderer {
	f, err := NewCurrencyFormatter("en-US", "USD")
	if err != nil {
		panic(err)
	}
	return NewRenderer(f)
}()

// Render renders c with US dollar formatting
func Render(c Cart) ViewModel {
	return defaultRenderer.Render(c)
}

// Render builds the view model for c
func (r *Renderer) Render(c Cart) ViewModel {
	totals := ComputeTotals(c)

	rows := make([]Row, 0, len(c))
	for _, item := range c {
		subtotal := roundCents(item.Price * float64(item.Quantity))
		rows = append(rows, Row{
			ID:           item.ID,
			Name:         item.Name,
			Image:        item.Image,
			Price:        item.Price,
			PriceText:    r.formatter.Format(item.Price),
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
			SubtotalText: r.formatter.Format(subtotal),
		})
	}

	return ViewModel{
		Badge:        strconv.Itoa(totals.TotalQuantity),
		Count:        totals.TotalQuantity,
		Rows:         rows,
		Subtotal:     totals.SubTotal,
		SubtotalText: r.formatter.Format(totals.SubTotal),
		Total:        totals.Total,
		TotalText:    r.formatter.Format(totals.Total),
		Empty:        len(c) == 0,
	}
}
