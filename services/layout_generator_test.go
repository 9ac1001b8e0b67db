package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dinebook/restaurant-booking/models"
)

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	first := NewLayoutGenerator(rand.New(rand.NewSource(42))).Generate(1, 10)
	second := NewLayoutGenerator(rand.New(rand.NewSource(42))).Generate(1, 10)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].XCoordinate, second[i].XCoordinate)
		assert.Equal(t, first[i].YCoordinate, second[i].YCoordinate)
		assert.Equal(t, *first[i].Shape, *second[i].Shape)
		assert.Equal(t, *first[i].Capacity, *second[i].Capacity)
	}

	different := NewLayoutGenerator(rand.New(rand.NewSource(7))).Generate(1, 10)
	same := len(different) == len(first)
	if same {
		for i := range first {
			if first[i].XCoordinate != different[i].XCoordinate ||
				first[i].YCoordinate != different[i].YCoordinate {
				same = false
				break
			}
		}
	}
	assert.False(t, same, "different seeds should not reproduce the same floor")
}

func TestGenerateRespectsPlacementConstraints(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		tables := NewLayoutGenerator(rand.New(rand.NewSource(seed))).Generate(3, 10)
		assert.NotEmpty(t, tables)
		assert.LessOrEqual(t, len(tables), 10)

		for i, tbl := range tables {
			assert.Equal(t, models.LayoutTypeTable, tbl.Type)
			assert.EqualValues(t, 3, tbl.RestaurantID)
			assert.NotNil(t, tbl.TableNumber)

			assert.GreaterOrEqual(t, tbl.XCoordinate, safeZoneMin)
			assert.LessOrEqual(t, tbl.XCoordinate, safeZoneMax)
			assert.GreaterOrEqual(t, tbl.YCoordinate, safeZoneMin)
			assert.LessOrEqual(t, tbl.YCoordinate, safeZoneMax)

			assert.Contains(t, []string{"circle", "rectangle"}, *tbl.Shape)
			assert.GreaterOrEqual(t, *tbl.Capacity, 2)
			assert.LessOrEqual(t, *tbl.Capacity, 8)

			for _, f := range DefaultFurniture {
				inside := f.X-furnitureSafeZone < tbl.XCoordinate &&
					tbl.XCoordinate < f.X+f.Width+furnitureSafeZone &&
					f.Y-furnitureSafeZone < tbl.YCoordinate &&
					tbl.YCoordinate < f.Y+f.Height+furnitureSafeZone
				assert.False(t, inside, "seed %d: table %d inside furniture safe zone", seed, i)
			}

			for j := i + 1; j < len(tables); j++ {
				dist := math.Hypot(tbl.XCoordinate-tables[j].XCoordinate,
					tbl.YCoordinate-tables[j].YCoordinate)
				assert.GreaterOrEqual(t, dist, minTableDistance,
					"seed %d: tables %d and %d too close", seed, i, j)
			}
		}
	}
}

func TestGenerateDrawsCountWhenUnspecified(t *testing.T) {
	tables := NewLayoutGenerator(rand.New(rand.NewSource(11))).Generate(1, 0)
	assert.LessOrEqual(t, len(tables), maxSuggestedTables)
	assert.NotEmpty(t, tables)
}

func TestGenerateBestEffortUnderCrowding(t *testing.T) {
	// Far more tables than the safe zone can hold at minimum spacing.
	// The generator drops what it cannot place instead of failing.
	tables := NewLayoutGenerator(rand.New(rand.NewSource(99))).Generate(1, 200)
	assert.Less(t, len(tables), 200)

	for i := range tables {
		for j := i + 1; j < len(tables); j++ {
			dist := math.Hypot(tables[i].XCoordinate-tables[j].XCoordinate,
				tables[i].YCoordinate-tables[j].YCoordinate)
			assert.GreaterOrEqual(t, dist, minTableDistance)
		}
	}
}

func TestFurnitureItems(t *testing.T) {
	items := NewLayoutGenerator(rand.New(rand.NewSource(1))).FurnitureItems()
	assert.Len(t, items, 2)

	assert.Equal(t, "Bar", *items[0].Name)
	assert.Equal(t, "Stage", *items[1].Name)
	for i, item := range items {
		assert.Equal(t, models.LayoutTypeFurniture, item.Type)
		assert.EqualValues(t, 101+i, item.ID)
		assert.NotNil(t, item.Width)
		assert.NotNil(t, item.Height)
		assert.NotNil(t, item.Color)
	}
}
