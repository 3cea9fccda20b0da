package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/watchscout"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// renderOffers prints one numbered row per offer with name and price.
func renderOffers(w io.Writer, offers *watchscout.OfferTable) {
	t := newTable(w)
	header := table.Row{"#", "Name"}
	if offers.HasColumn(watchscout.FieldPrice) {
		header = append(header, "Price")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	for i, row := range offers.Rows {
		r := table.Row{i + 1, row.Name()}
		if p, ok := row.Price(); ok {
			r = append(r, p)
		}
		t.AppendRow(r)
	}
	t.Render()
}

// renderSummary prints price statistics in the order count, mean, std,
// min, quartiles, max.
func renderSummary(w io.Writer, s watchscout.PriceSummary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Price", ""})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.AppendRows([]table.Row{
		{"count", s.Count},
		{"mean", formatFloat(s.Mean)},
		{"std", formatFloat(s.Std)},
		{"min", s.Min},
		{"25%", formatFloat(s.P25)},
		{"50%", formatFloat(s.P50)},
		{"75%", formatFloat(s.P75)},
		{"max", s.Max},
	})
	t.Render()
}

// renderSnapshots prints the history listing.
func renderSnapshots(w io.Writer, snaps []*watchscout.Snapshot) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Term", "Pages", "Listings", "Offers", "Failed", "Created"})
	for _, s := range snaps {
		pages := "first"
		if s.AllPages {
			pages = "all"
		}
		listings := "-"
		if s.ListingCount >= 0 {
			listings = strconv.Itoa(s.ListingCount)
		}
		failed := "-"
		if len(s.FailedPages) > 0 {
			failed = fmt.Sprint(s.FailedPages)
		}
		t.AppendRow(table.Row{s.ID, s.Term, pages, listings, s.Offers, failed, s.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
