package watchscout

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Row is one normalized offer keyed by column name.
// Columns the offer did not carry are absent from the map.
type Row map[string]any

// Name returns the row's display name.
func (r Row) Name() string {
	s, _ := r[FieldName].(string)
	return s
}

// Price returns the row's integer price, if it has one.
func (r Row) Price() (int64, bool) {
	p, ok := r[FieldPrice].(int64)
	return p, ok
}

// OfferTable is the column-aligned union of every offer in a session.
type OfferTable struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *OfferTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether any offer produced the named column.
func (t *OfferTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// PriceOnRequest reports whether the table has offers but none of them
// published a price.
func (t *OfferTable) PriceOnRequest() bool {
	return t.Len() > 0 && !t.HasColumn(FieldPrice)
}

// NewOfferTable normalizes the offers accumulated across pages.
//
// Batches are spliced in one level deep and nested objects become dotted
// columns. Rows without a name are dropped. When at least one offer has a
// usable price the price column exists, holds int64 values, and rows
// without a usable price are dropped too.
func NewOfferTable(pages [][]OfferEntry) *OfferTable {
	offers := FlattenOffers(pages)

	rows := make([]Row, 0, len(offers))
	columns := make(map[string]struct{})
	var priced bool
	for _, o := range offers {
		row := make(Row, len(o))
		flattenFields(row, "", o)

		if v, ok := row[FieldPrice]; ok {
			if p, ok := coercePrice(v); ok {
				row[FieldPrice] = p
				priced = true
			} else {
				delete(row, FieldPrice)
			}
		}

		for k := range row {
			columns[k] = struct{}{}
		}
		rows = append(rows, row)
	}

	t := &OfferTable{Rows: make([]Row, 0, len(rows))}
	for _, row := range rows {
		if strings.TrimSpace(row.Name()) == "" {
			continue
		}
		if _, ok := row.Price(); priced && !ok {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if !priced {
		delete(columns, FieldPrice)
	}
	t.Columns = orderColumns(columns)
	return t
}

// flattenFields copies src into dst, joining nested object keys with dots.
func flattenFields(dst Row, prefix string, src map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flattenFields(dst, key, v)
		case Offer:
			flattenFields(dst, key, v)
		case nil:
			// Null fields are treated as absent.
		default:
			dst[key] = v
		}
	}
}

// orderColumns puts name and price first, then the rest alphabetically.
func orderColumns(set map[string]struct{}) []string {
	var cols []string
	for _, k := range []string{FieldName, FieldPrice} {
		if _, ok := set[k]; ok {
			cols = append(cols, k)
			delete(set, k)
		}
	}
	rest := make([]string, 0, len(set))
	for k := range set {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

var priceSeparators = strings.NewReplacer(",", "", "'", "", " ", "", "\u00a0", "")

// coercePrice converts a published price to an integer, truncating any
// fractional part. Strings may use thousands separators.
func coercePrice(v any) (int64, bool) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		s := priceSeparators.Replace(strings.TrimSpace(v))
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return truncate(f)
	}
	return 0, false
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
