package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLine(sku string, qty, unit int64) Line {
	return Line{
		SKU:          sku,
		Name:         "Эспрессо №1",
		Slug:         "espresso-1",
		Quantity:     decimal.NewFromInt(qty),
		PricePerUnit: decimal.NewFromInt(unit),
		Image:        "/img/espresso-1.jpg",
	}
}

func TestCart_PutLine(t *testing.T) {
	t.Run("appends a new line and recomputes its total", func(t *testing.T) {
		c := New(uuid.New())
		require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 4, 13020)))

		line, ok := c.Line("ESPRESSO_1")
		require.True(t, ok)
		assert.True(t, line.Total.Equal(decimal.NewFromInt(52080)))
		assert.Equal(t, 1, c.Count())
	})

	t.Run("replaces the line for an existing SKU", func(t *testing.T) {
		c := New(uuid.New())
		require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 4, 13020)))
		require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 7, 13020)))

		assert.Equal(t, 1, c.Count(), "one line per distinct SKU")
		line, _ := c.Line("ESPRESSO_1")
		assert.True(t, line.Quantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("total is derived, never trusted from the caller", func(t *testing.T) {
		c := New(uuid.New())
		tampered := testLine("ESPRESSO_1", 2, 13020)
		tampered.Total = decimal.NewFromInt(1)
		require.NoError(t, c.PutLine(tampered))

		line, _ := c.Line("ESPRESSO_1")
		assert.True(t, line.Total.Equal(decimal.NewFromInt(26040)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := New(uuid.New())
		bad := testLine("ESPRESSO_1", 0, 13020)
		require.Error(t, c.PutLine(bad))
		assert.True(t, c.IsEmpty())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := New(uuid.New())
		require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 1, 13020)))
		require.NoError(t, c.PutLine(testLine("FILTER_2", 1, 11500)))
		require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 3, 13020)))

		require.Len(t, c.Lines, 2)
		assert.Equal(t, "ESPRESSO_1", c.Lines[0].SKU)
		assert.Equal(t, "FILTER_2", c.Lines[1].SKU)
	})
}

func TestCart_RemoveLine(t *testing.T) {
	c := New(uuid.New())
	require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 4, 13020)))

	t.Run("removes an existing line", func(t *testing.T) {
		c.RemoveLine("ESPRESSO_1")
		assert.True(t, c.IsEmpty())
	})

	t.Run("removing an absent SKU is a no-op", func(t *testing.T) {
		require.NoError(t, c.PutLine(testLine("FILTER_2", 2, 11500)))
		before := c.Total()
		c.RemoveLine("GHOST_BLEND")
		assert.Equal(t, 1, c.Count())
		assert.True(t, c.Total().Equal(before))
	})
}

func TestCart_Aggregates(t *testing.T) {
	c := New(uuid.New())
	require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 4, 13020)))
	require.NoError(t, c.PutLine(testLine("FILTER_2", 2, 11500)))

	t.Run("total is the sum of line totals", func(t *testing.T) {
		want := decimal.NewFromInt(4*13020 + 2*11500)
		assert.True(t, c.Total().Equal(want))
	})

	t.Run("count is distinct lines, not summed quantity", func(t *testing.T) {
		assert.Equal(t, 2, c.Count())
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		c.Clear()
		assert.True(t, c.IsEmpty())
		assert.True(t, c.Total().IsZero())
	})
}

func TestCart_ChangeEvents(t *testing.T) {
	c := New(uuid.New())
	require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 4, 13020)))
	require.NoError(t, c.PutLine(testLine("ESPRESSO_1", 7, 13020)))
	c.RemoveLine("ESPRESSO_1")
	c.Clear() // already empty, must not emit

	events := c.GetDomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, EventTypeCartLineAdded, events[0].EventType())
	assert.Equal(t, EventTypeCartLineUpdated, events[1].EventType())
	assert.Equal(t, EventTypeCartLineRemoved, events[2].EventType())

	c.ClearDomainEvents()
	assert.Empty(t, c.GetDomainEvents())
}

func TestCart_SnapshotRoundTrip(t *testing.T) {
	c := New(uuid.New())
	line := testLine("ESPRESSO_1", 4, 13020)
	line.Quantity = decimal.NewFromFloat(4.5)
	require.NoError(t, c.PutLine(line))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, c.ID, restored.ID)
	require.Len(t, restored.Lines, 1)
	got := restored.Lines[0]
	assert.Equal(t, line.SKU, got.SKU)
	assert.Equal(t, line.Name, got.Name)
	assert.Equal(t, line.Slug, got.Slug)
	assert.Equal(t, line.Image, got.Image)
	assert.True(t, got.Quantity.Equal(decimal.NewFromFloat(4.5)))
	assert.True(t, got.PricePerUnit.Equal(decimal.NewFromInt(13020)))
	assert.True(t, got.Total.Equal(got.Quantity.Mul(got.PricePerUnit).Round(0)))
}
