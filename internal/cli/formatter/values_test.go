package formatter

import (
	"testing"

	"github.com/jmertens/billsight/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$250.00", Money(250))
	assert.Equal(t, "$1,234.50", Money(1234.5))
	assert.Equal(t, "$12,345,678.90", Money(12345678.9))
	assert.Equal(t, "-$42.25", Money(-42.25))
}

func TestHours(t *testing.T) {
	assert.Equal(t, "0.0h", Hours(0))
	assert.Equal(t, "12.5h", Hours(12.5))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "$250.00/h", Rate(250))
	assert.Contains(t, Rate(0), "--", "zero rate reads as absent")
}

func TestPct(t *testing.T) {
	assert.Equal(t, "87.5%", PctVal(0.875))
	assert.Equal(t, "100.0%", PctVal(1))

	v := 0.5
	assert.Equal(t, "50.0%", Pct(&v))
	assert.Contains(t, Pct(nil), "--")
}

func TestDay(t *testing.T) {
	assert.Equal(t, "2026-02-10", Day(testutil.Day("2026-02-10")))
	assert.Contains(t, Day(nil), "--")
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 event", Count(1, "event"))
	assert.Equal(t, "4 events", Count(4, "event"))
}
