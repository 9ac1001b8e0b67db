package services

import (
	"math"

	"github.com/dinebook/restaurant-booking/models"
)

// Canned layouts used as the default floor plan the first time a
// restaurant's layout is read. Selection is deterministic per restaurant:
// the capacity picks the bracket, the id parity picks one of the two
// templates in it, so repeated reads always produce the same floor.
const (
	TemplateSmall1  = "small_1"
	TemplateSmall2  = "small_2"
	TemplateMedium1 = "medium_1"
	TemplateMedium2 = "medium_2"
	TemplateLarge1  = "large_1"
	TemplateLarge2  = "large_2"
)

func SelectTemplate(restaurantID uint, capacity int) string {
	var pair [2]string
	switch {
	case capacity <= 50:
		pair = [2]string{TemplateSmall1, TemplateSmall2}
	case capacity <= 100:
		pair = [2]string{TemplateMedium1, TemplateMedium2}
	default:
		pair = [2]string{TemplateLarge1, TemplateLarge2}
	}
	return pair[restaurantID%2]
}

// TemplateItems returns the slots of a canned template, without restaurant
// scoping. Unknown keys fall back to the first small template.
func TemplateItems(key string) []models.Layout {
	switch key {
	case TemplateSmall2:
		return templateSmall2()
	case TemplateMedium1:
		return templateMedium1()
	case TemplateMedium2:
		return templateMedium2()
	case TemplateLarge1:
		return templateLarge1()
	case TemplateLarge2:
		return templateLarge2()
	default:
		return templateSmall1()
	}
}

func tplTable(number int, x, y float64, shape string, capacity int, tableType string) models.Layout {
	return models.Layout{
		Type:        models.LayoutTypeTable,
		TableNumber: &number,
		XCoordinate: x,
		YCoordinate: y,
		Shape:       &shape,
		Capacity:    &capacity,
		TableType:   &tableType,
	}
}

func tplFurniture(name string, x, y, width, height float64, color string) models.Layout {
	return models.Layout{
		Type:        models.LayoutTypeFurniture,
		Name:        &name,
		XCoordinate: x,
		YCoordinate: y,
		Width:       &width,
		Height:      &height,
		Color:       &color,
	}
}

// Small bracket (capacity <= 50).

func templateSmall1() []models.Layout {
	return []models.Layout{
		tplTable(1, 15, 15, "circle", 6, "vip"),
		tplTable(2, 15, 30, "circle", 6, "vip"),
		tplTable(3, 50, 50, "rectangle", 4, "standard"),
		tplTable(4, 65, 50, "rectangle", 4, "standard"),
		tplTable(5, 50, 65, "rectangle", 4, "standard"),
		tplTable(6, 65, 65, "rectangle", 4, "standard"),
		tplFurniture("Bar", 80, 20, 15, 8, "#4a5568"),
		tplFurniture("Entrance", 5, 50, 10, 20, "#718096"),
	}
}

func templateSmall2() []models.Layout {
	items := make([]models.Layout, 0, 9)
	for i := 0; i < 8; i++ {
		angle := float64(i) * (2 * math.Pi / 8)
		items = append(items, tplTable(i+1,
			50+25*math.Cos(angle), 50+25*math.Sin(angle),
			"circle", 4, "standard"))
	}
	return append(items, tplFurniture("Show Kitchen", 70, 20, 25, 15, "#2d3748"))
}

// Medium bracket (capacity <= 100).

func templateMedium1() []models.Layout {
	items := make([]models.Layout, 0, 14)
	for i := 0; i < 4; i++ {
		items = append(items, tplTable(i+1, float64(10+i*15), 35, "rectangle", 6, "booth"))
	}
	for i := 0; i < 8; i++ {
		items = append(items, tplTable(i+5,
			float64(50+(i%2)*20), float64(50+(i/2)*20),
			"circle", 4, "standard"))
	}
	return append(items,
		tplFurniture("Wine Bar", 80, 10, 15, 25, "#2b6cb0"),
		tplFurniture("Patio", 5, 70, 40, 25, "#48bb78"),
	)
}

func templateMedium2() []models.Layout {
	items := make([]models.Layout, 0, 11)
	for i := 0; i < 9; i++ {
		x := float64(25 + (i%3)*25)
		y := float64(35 + (i/3)*20)
		// keep the private-dining corner clear
		if 70 <= x && x <= 95 && 70 <= y && y <= 95 {
			continue
		}
		tableType := "standard"
		if i >= 6 {
			tableType = "vip"
		}
		items = append(items, tplTable(i+1, x, y, "rectangle", 4, tableType))
	}
	return append(items,
		tplFurniture("Private Dining", 70, 70, 25, 25, "#c53030"),
		tplFurniture("Sushi Counter", 5, 20, 15, 30, "#4a5568"),
	)
}

// Large bracket (capacity > 100).

func templateLarge1() []models.Layout {
	items := make([]models.Layout, 0, 20)
	// left section grid
	for i := 0; i < 9; i++ {
		items = append(items, tplTable(i+1,
			float64(15+(i%3)*20), float64(20+(i/3)*20),
			"rectangle", 4, "standard"))
	}
	// right section grid
	for i := 0; i < 6; i++ {
		items = append(items, tplTable(i+10,
			float64(65+(i%2)*20), float64(20+(i/2)*20),
			"rectangle", 4, "standard"))
	}
	items = append(items,
		tplTable(16, 40, 75, "circle", 6, "vip"),
		tplTable(17, 60, 75, "circle", 6, "vip"),
	)
	return append(items,
		tplFurniture("Main Bar", 75, 10, 20, 8, "#2d3748"),
		tplFurniture("Entrance", 5, 45, 8, 15, "#718096"),
		tplFurniture("Lounge", 80, 70, 15, 25, "#4a5568"),
	)
}

func templateLarge2() []models.Layout {
	items := make([]models.Layout, 0, 19)
	// central booths
	for i := 0; i < 6; i++ {
		items = append(items, tplTable(i+1,
			float64(40+(i%2)*20), float64(25+(i/2)*15),
			"rectangle", 6, "booth"))
	}
	// window-side tables
	for i := 0; i < 4; i++ {
		items = append(items, tplTable(i+7, 15, float64(20+i*20), "circle", 4, "standard"))
	}
	// bar-side high tables
	for i := 0; i < 4; i++ {
		items = append(items, tplTable(i+11, 85, float64(30+i*15), "circle", 2, "high"))
	}
	items = append(items,
		tplTable(15, 40, 80, "circle", 8, "vip"),
		tplTable(16, 60, 80, "circle", 8, "vip"),
	)
	return append(items,
		tplFurniture("Bar Counter", 70, 10, 25, 10, "#2d3748"),
		tplFurniture("Entrance", 5, 45, 8, 15, "#718096"),
		tplFurniture("Wine Display", 70, 75, 15, 20, "#742a2a"),
	)
}
