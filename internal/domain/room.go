package domain

import "fmt"

// Category determines the nightly rate and is a hard filter on search.
type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategoryDeluxe   Category = "DELUXE"
	CategorySuite    Category = "SUITE"
)

// Categories returns all known categories in menu order.
func Categories() []Category {
	return []Category{CategoryStandard, CategoryDeluxe, CategorySuite}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryDeluxe, CategorySuite:
		return true
	}
	return false
}

// ParseCategory accepts the canonical upper-case name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown room category %q", s)
	}
	return c, nil
}

// Room is immutable after catalog seeding. Number is the stable identifier.
type Room struct {
	Number   int      `json:"number"`
	Category Category `json:"category"`
}

func (r Room) String() string {
	return fmt.Sprintf("Room %d (%s)", r.Number, r.Category)
}

// DefaultCatalog seeds the initial room set: 5 STANDARD from 101,
// 4 DELUXE from 201, 2 SUITE from 301.
func DefaultCatalog() []Room {
	out := make([]Room, 0, 11)
	for i := 0; i < 5; i++ {
		out = append(out, Room{Number: 101 + i, Category: CategoryStandard})
	}
	for i := 0; i < 4; i++ {
		out = append(out, Room{Number: 201 + i, Category: CategoryDeluxe})
	}
	for i := 0; i < 2; i++ {
		out = append(out, Room{Number: 301 + i, Category: CategorySuite})
	}
	return out
}
