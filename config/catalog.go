package config

import "strings"

// Catalog is the ordered list of titles a visitor may subscribe to.
type Catalog []string

// ParseCatalog splits a comma separated list of titles, dropping blanks and duplicates
// while keeping the first occurrence order.
func ParseCatalog(s string) Catalog {
	seen := make(map[string]bool)
	catalog := make(Catalog, 0)
	for _, title := range strings.Split(s, ",") {
		title = strings.TrimSpace(title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		catalog = append(catalog, title)
	}
	return catalog
}

func (c Catalog) Contains(title string) bool {
	for _, t := range c {
		if t == title {
			return true
		}
	}
	return false
}
