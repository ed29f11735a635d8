package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// render writes v in the selected output format. table draws the default
// human-readable form.
func (c *cli) render(out io.Writer, v any, table func(w *tabwriter.Writer)) error {
	switch strings.ToLower(c.output) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		table(w)
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", c.output)
	}
}

// money formats amounts with the configured locale grouping and currency.
type money struct {
	p        *message.Printer
	currency string
}

func newMoney(locale, currency string) money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return money{p: message.NewPrinter(tag), currency: currency}
}

func (m money) format(d decimal.Decimal) string {
	s := m.p.Sprintf("%.2f", d.InexactFloat64())
	if m.currency == "" {
		return s
	}
	return s + " " + m.currency
}

func (c *cli) money() money {
	return newMoney(c.cfg.Display.Locale, c.cfg.Display.Currency)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
