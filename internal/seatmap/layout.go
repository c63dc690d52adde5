// Package seatmap parses screen seat-layout descriptors and resolves seat
// classes and prices. A descriptor is a JSON document stored on the screen
// record:
//
//	{"rows": 8, "seats_per_row": 12, "premium_rows": ["A","B"], "gold_rows": ["C","D"]}
//
// Rows are labelled A..Z in order. A seat label is the row letter followed
// by the 1-based seat number ("A1", "C12"). Class resolution checks the
// premium row list first, then gold, and falls back to regular, so a row
// listed in both resolves to premium.
package seatmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Seat classes in priority order.
const (
	ClassPremium = "PREMIUM"
	ClassGold    = "GOLD"
	ClassRegular = "REGULAR"
)

const maxRows = 26 // rows are labelled with a single letter A..Z

// Selection validation errors surfaced to booking handlers.
var (
	ErrNoSeats       = errors.New("no seats selected")
	ErrTooManySeats  = errors.New("too many seats selected")
	ErrDuplicateSeat = errors.New("duplicate seat in selection")
	ErrUnknownSeat   = errors.New("seat not in layout")
)

// Layout is a parsed seat-layout descriptor.
type Layout struct {
	Rows        int      `json:"rows"`
	SeatsPerRow int      `json:"seats_per_row"`
	PremiumRows []string `json:"premium_rows"`
	GoldRows    []string `json:"gold_rows"`

	premium map[string]bool
	gold    map[string]bool
}

// Prices carries the per-class prices of a showtime in cents.
type Prices struct {
	PremiumCents uint32
	GoldCents    uint32
	RegularCents uint32
}

// Parse decodes and validates a layout descriptor. Row lists may name rows
// outside 1..Rows; those entries are ignored rather than rejected, since
// the class of a nonexistent row never matters.
func Parse(raw string) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if l.Rows < 1 || l.Rows > maxRows {
		return nil, fmt.Errorf("layout rows out of range: %d", l.Rows)
	}
	if l.SeatsPerRow < 1 {
		return nil, fmt.Errorf("layout seats_per_row out of range: %d", l.SeatsPerRow)
	}
	l.premium = rowSet(l.PremiumRows)
	l.gold = rowSet(l.GoldRows)
	return &l, nil
}

func rowSet(rows []string) map[string]bool {
	m := make(map[string]bool, len(rows))
	for _, r := range rows {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			m[r] = true
		}
	}
	return m
}

// RowLabels returns the row letters of the layout in display order.
func (l *Layout) RowLabels() []string {
	labels := make([]string, l.Rows)
	for i := 0; i < l.Rows; i++ {
		labels[i] = string(rune('A' + i))
	}
	return labels
}

// Class resolves the seat class of a row letter. Premium takes priority
// over gold; anything else is regular.
func (l *Layout) Class(row string) string {
	switch {
	case l.premium[row]:
		return ClassPremium
	case l.gold[row]:
		return ClassGold
	default:
		return ClassRegular
	}
}

// SplitLabel parses a seat label into its row letter and seat number.
// ok is false when the label is malformed.
func SplitLabel(label string) (row string, num int, ok bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return "", 0, false
	}
	row = label[:1]
	if row[0] < 'A' || row[0] > 'Z' {
		return "", 0, false
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return row, n, true
}

// Contains reports whether the seat label identifies a seat that exists in
// the layout.
func (l *Layout) Contains(label string) bool {
	row, num, ok := SplitLabel(label)
	if !ok {
		return false
	}
	idx := int(row[0] - 'A')
	return idx < l.Rows && num <= l.SeatsPerRow
}

// PriceFor returns the price of a single seat under the given class prices.
// The second return value is false when the seat is not in the layout.
func (l *Layout) PriceFor(label string, p Prices) (uint32, bool) {
	if !l.Contains(label) {
		return 0, false
	}
	row, _, _ := SplitLabel(label)
	switch l.Class(row) {
	case ClassPremium:
		return p.PremiumCents, true
	case ClassGold:
		return p.GoldCents, true
	default:
		return p.RegularCents, true
	}
}

// Total sums the resolved class price of every selected seat.
func (l *Layout) Total(labels []string, p Prices) (uint32, error) {
	var total uint32
	for _, lab := range labels {
		price, ok := l.PriceFor(lab, p)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownSeat, lab)
		}
		total += price
	}
	return total, nil
}

// ValidateSelection checks a seat selection against the layout and the
// per-booking seat cap. It returns the normalized (upper-cased, trimmed)
// labels on success.
func (l *Layout) ValidateSelection(labels []string, max int) ([]string, error) {
	if len(labels) == 0 {
		return nil, ErrNoSeats
	}
	if max > 0 && len(labels) > max {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySeats, len(labels), max)
	}
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, lab := range labels {
		norm := strings.ToUpper(strings.TrimSpace(lab))
		if !l.Contains(norm) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, lab)
		}
		if seen[norm] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, norm)
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out, nil
}
