package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDays(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		assert.Equal(t, 1, Days(date(2026, 3, 10), date(2026, 3, 10)))
	})

	t.Run("inclusive range", func(t *testing.T) {
		assert.Equal(t, 3, Days(date(2026, 3, 10), date(2026, 3, 12)))
	})

	t.Run("ignores time of day", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
		end := time.Date(2026, 3, 12, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 3, Days(start, end))
	})
}

func TestComputePrice(t *testing.T) {
	t.Run("single day no discount", func(t *testing.T) {
		price := ComputePrice(100, 10, date(2026, 3, 10), date(2026, 3, 10))
		assert.Equal(t, int64(100), price)
	})

	t.Run("below threshold keeps full price", func(t *testing.T) {
		// 27 days, one short of the monthly discount.
		price := ComputePrice(100, 10, date(2026, 3, 1), date(2026, 3, 27))
		assert.Equal(t, int64(2700), price)
	})

	t.Run("28 days triggers monthly discount", func(t *testing.T) {
		price := ComputePrice(100, 10, date(2026, 3, 1), date(2026, 3, 28))
		assert.Equal(t, int64(2520), price)
	})

	t.Run("zero discount at threshold", func(t *testing.T) {
		price := ComputePrice(100, 0, date(2026, 3, 1), date(2026, 3, 28))
		assert.Equal(t, int64(2800), price)
	})

	t.Run("discount truncates toward zero", func(t *testing.T) {
		// 29 days * 7 = 203; 203 * 15 / 100 = 30.45 -> 30; 203 - 30 = 173.
		price := ComputePrice(7, 15, date(2026, 3, 1), date(2026, 3, 29))
		assert.Equal(t, int64(173), price)
	})
}
