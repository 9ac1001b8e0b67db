package services

import (
	"math"
	"math/rand"
	"time"

	"github.com/dinebook/restaurant-booking/models"
)

const (
	layoutCanvasWidth  = 800.0
	layoutCanvasHeight = 600.0

	// Placement constraints in percentage space.
	minTableDistance  = 10.0
	furnitureSafeZone = 15.0
	safeZoneMin       = 20.0
	safeZoneMax       = 80.0

	maxPlacementAttempts = 100

	minSuggestedTables = 8
	maxSuggestedTables = 12
)

// FurnitureBox is an axis-aligned obstacle the generator must keep tables
// away from, in percentage coordinates.
type FurnitureBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DefaultFurniture are the fixed obstacles every suggested layout works
// around: a bar in the top-left corner and a stage in the bottom-right.
var DefaultFurniture = []FurnitureBox{
	{X: 5, Y: 5, Width: 10, Height: 8},
	{X: 90, Y: 90, Width: 10, Height: 10},
}

// LayoutGenerator places tables on a ring around the canvas center,
// spiralling outward when a candidate collides with furniture or an
// already-placed table. The random source is passed in explicitly so a
// generation run is reproducible from a seed.
type LayoutGenerator struct {
	rng       *rand.Rand
	furniture []FurnitureBox
}

func NewLayoutGenerator(rng *rand.Rand) *LayoutGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LayoutGenerator{rng: rng, furniture: DefaultFurniture}
}

// Generate produces up to tableCount non-overlapping tables for the
// restaurant. tableCount <= 0 draws a count from [8,12]. A table whose
// placement budget runs out is skipped, so the result may hold fewer tables
// than requested; that is accepted behavior, not an error.
func (g *LayoutGenerator) Generate(restaurantID uint, tableCount int) []models.Layout {
	if tableCount <= 0 {
		tableCount = g.rng.Intn(maxSuggestedTables-minSuggestedTables+1) + minSuggestedTables
	}

	centerX := layoutCanvasWidth / 2
	centerY := layoutCanvasHeight / 2
	radius := float64(g.rng.Intn(16) + 15)
	// One shared offset rotates the whole ring.
	offsetAngle := g.rng.Float64() * math.Pi

	tables := make([]models.Layout, 0, tableCount)
	for i := 0; i < tableCount; i++ {
		var xPercent, yPercent float64
		collision := true

		for attempts := 0; collision && attempts < maxPlacementAttempts; attempts++ {
			angle := 2*math.Pi*float64(i)/float64(tableCount) + offsetAngle
			xPixel := centerX + radius*math.Cos(angle)
			yPixel := centerY + radius*math.Sin(angle)
			xPercent = clampToSafeZone(xPixel / layoutCanvasWidth * 100)
			yPercent = clampToSafeZone(yPixel / layoutCanvasHeight * 100)

			collision = !g.isValidPosition(xPercent, yPercent, tables)
			if collision {
				radius++
			}
		}
		if collision {
			// Budget exhausted, accept a sparser floor.
			continue
		}

		shape := "rectangle"
		if g.rng.Float64() < 0.5 {
			shape = "circle"
		}
		capacity := g.rng.Intn(7) + 2
		number := i + 1

		tables = append(tables, models.Layout{
			RestaurantID: restaurantID,
			Type:         models.LayoutTypeTable,
			TableNumber:  &number,
			XCoordinate:  xPercent,
			YCoordinate:  yPercent,
			Shape:        &shape,
			Capacity:     &capacity,
		})
	}
	return tables
}

func (g *LayoutGenerator) isValidPosition(x, y float64, placed []models.Layout) bool {
	for _, f := range g.furniture {
		if f.X-furnitureSafeZone < x && x < f.X+f.Width+furnitureSafeZone &&
			f.Y-furnitureSafeZone < y && y < f.Y+f.Height+furnitureSafeZone {
			return false
		}
	}
	for _, t := range placed {
		if math.Hypot(x-t.XCoordinate, y-t.YCoordinate) < minTableDistance {
			return false
		}
	}
	return true
}

func clampToSafeZone(v float64) float64 {
	return math.Max(safeZoneMin, math.Min(safeZoneMax, v))
}

// FurnitureItems renders the fixed obstacles as layout slots for the
// presentation layer. They are not persisted with the generated tables.
func (g *LayoutGenerator) FurnitureItems() []models.Layout {
	names := []string{"Bar", "Stage"}
	colors := []string{"#6c757d", "#343a40"}

	items := make([]models.Layout, 0, len(g.furniture))
	for i, f := range g.furniture {
		f := f
		items = append(items, models.Layout{
			ID:          uint(101 + i),
			Type:        models.LayoutTypeFurniture,
			Name:        &names[i],
			XCoordinate: f.X,
			YCoordinate: f.Y,
			Width:       &f.Width,
			Height:      &f.Height,
			Color:       &colors[i],
		})
	}
	return items
}
