package seatmap

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `{"rows": 5, "seats_per_row": 10, "premium_rows": ["A"], "gold_rows": ["B", "C"]}`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", sampleLayout, false},
		{"not json", "rows=5", true},
		{"zero rows", `{"rows": 0, "seats_per_row": 10}`, true},
		{"too many rows", `{"rows": 27, "seats_per_row": 10}`, true},
		{"zero seats per row", `{"rows": 5, "seats_per_row": 0}`, true},
		{"minimal", `{"rows": 1, "seats_per_row": 1}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestClassPriority(t *testing.T) {
	// A row listed as both premium and gold resolves to premium.
	l, err := Parse(`{"rows": 3, "seats_per_row": 4, "premium_rows": ["A"], "gold_rows": ["A", "B"]}`)
	require.NoError(t, err)

	assert.Equal(t, ClassPremium, l.Class("A"))
	assert.Equal(t, ClassGold, l.Class("B"))
	assert.Equal(t, ClassRegular, l.Class("C"))
}

func TestRowSetNormalization(t *testing.T) {
	l, err := Parse(`{"rows": 3, "seats_per_row": 4, "premium_rows": [" a ", ""], "gold_rows": ["b"]}`)
	require.NoError(t, err)

	assert.Equal(t, ClassPremium, l.Class("A"))
	assert.Equal(t, ClassGold, l.Class("B"))
}

func TestSplitLabel(t *testing.T) {
	tests := []struct {
		label   string
		wantRow string
		wantNum int
		wantOK  bool
	}{
		{"A1", "A", 1, true},
		{"c12", "C", 12, true},
		{" b3 ", "B", 3, true},
		{"A0", "", 0, false},
		{"A", "", 0, false},
		{"1A", "", 0, false},
		{"", "", 0, false},
		{"AA", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			row, num, ok := SplitLabel(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantRow, row)
				assert.Equal(t, tt.wantNum, num)
			}
		})
	}
}

func TestContains(t *testing.T) {
	l, err := Parse(sampleLayout)
	require.NoError(t, err)

	assert.True(t, l.Contains("A1"))
	assert.True(t, l.Contains("E10"))
	assert.False(t, l.Contains("E11"), "seat number past row width")
	assert.False(t, l.Contains("F1"), "row past layout")
	assert.False(t, l.Contains("A0"))
}

func TestPriceForAndTotal(t *testing.T) {
	l, err := Parse(sampleLayout)
	require.NoError(t, err)
	p := Prices{PremiumCents: 1500, GoldCents: 1000, RegularCents: 700}

	price, ok := l.PriceFor("A1", p)
	require.True(t, ok)
	assert.Equal(t, uint32(1500), price)

	price, ok = l.PriceFor("B5", p)
	require.True(t, ok)
	assert.Equal(t, uint32(1000), price)

	price, ok = l.PriceFor("D9", p)
	require.True(t, ok)
	assert.Equal(t, uint32(700), price)

	_, ok = l.PriceFor("Z1", p)
	assert.False(t, ok)

	total, err := l.Total([]string{"A1", "B5", "D9"}, p)
	require.NoError(t, err)
	assert.Equal(t, uint32(3200), total)

	_, err = l.Total([]string{"A1", "Z1"}, p)
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestValidateSelection(t *testing.T) {
	l, err := Parse(sampleLayout)
	require.NoError(t, err)

	tests := []struct {
		name    string
		labels  []string
		max     int
		want    []string
		wantErr error
	}{
		{"single seat", []string{"a1"}, 10, []string{"A1"}, nil},
		{"normalizes and keeps order", []string{" c3", "A1"}, 10, []string{"C3", "A1"}, nil},
		{"empty selection", nil, 10, nil, ErrNoSeats},
		{"over the cap", []string{"A1", "A2", "A3"}, 2, nil, ErrTooManySeats},
		{"duplicate after normalization", []string{"A1", "a1"}, 10, nil, ErrDuplicateSeat},
		{"unknown seat", []string{"F1"}, 10, nil, ErrUnknownSeat},
		{"no cap when max is zero", []string{"A1", "A2", "A3"}, 0, []string{"A1", "A2", "A3"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.ValidateSelection(tt.labels, tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowLabels(t *testing.T) {
	l, err := Parse(`{"rows": 3, "seats_per_row": 2}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, l.RowLabels())
}

func TestEveryLabelInLayoutIsPriced(t *testing.T) {
	l, err := Parse(sampleLayout)
	require.NoError(t, err)
	p := Prices{PremiumCents: 3, GoldCents: 2, RegularCents: 1}

	for _, row := range l.RowLabels() {
		for n := 1; n <= l.SeatsPerRow; n++ {
			label := row + strconv.Itoa(n)
			price, ok := l.PriceFor(label, p)
			assert.True(t, ok, "label %s", label)
			assert.NotZero(t, price, "label %s", label)
		}
	}
}
