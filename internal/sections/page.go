package sections

import (
	"sort"

	"ellavera-site/internal/models"
)

// SortByOrder returns a copy of list stably sorted by ascending order. Ties
// keep their fetch order; gaps and duplicates are left as they are.
func SortByOrder(list []models.PageSection) []models.PageSection {
	sorted := make([]models.PageSection, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// VisibleOrdered keeps visible sections and sorts them for public rendering.
// Applying it to its own output returns the same sequence.
func VisibleOrdered(list []models.PageSection) []models.PageSection {
	visible := make([]models.PageSection, 0, len(list))
	for _, section := range list {
		if section.Visible {
			visible = append(visible, section)
		}
	}
	return SortByOrder(visible)
}

// Shades assigns background classes to an already filtered and sorted list.
// Hero sections get no class and do not advance the alternation; every other
// section, including unknown types, does.
func Shades(list []models.PageSection) []string {
	shades := make([]string, len(list))
	index := 0
	for i, section := range list {
		if NormalizeType(section.SectionType) == TypeHero {
			continue
		}
		if index%2 == 0 {
			shades[i] = ShadeA
		} else {
			shades[i] = ShadeB
		}
		index++
	}
	return shades
}

// FindByType returns the first section of sectionType in list.
func FindByType(list []models.PageSection, sectionType string) (models.PageSection, bool) {
	sectionType = NormalizeType(sectionType)
	for _, section := range list {
		if NormalizeType(section.SectionType) == sectionType {
			return section, true
		}
	}
	return models.PageSection{}, false
}

// NextOrder returns an order value placing a new section after every
// existing one. Orders start at 1.
func NextOrder(list []models.PageSection) int {
	next := 1
	for _, section := range list {
		if section.Order >= next {
			next = section.Order + 1
		}
	}
	return next
}
