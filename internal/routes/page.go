package routes

import "fmt"

// PageID identifies a renderable page variant
type PageID int

// Page identifiers. The zero value is NotFound so that an uninitialised
// PageID never points at a real page.
const (
	NotFound PageID = iota
	One
	Two
	Three
)

var pageNames = map[PageID]string{
	NotFound: "not_found",
	One:      "one",
	Two:      "two",
	Three:    "three",
}

// String returns the stable name used in logs and JSON
func (p PageID) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// MarshalText encodes the page as its stable name
func (p PageID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a stable page name
func (p *PageID) UnmarshalText(text []byte) error {
	id, err := ParsePageID(string(text))
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// ParsePageID looks up a page by its stable name
func ParsePageID(name string) (PageID, error) {
	for id, n := range pageNames {
		if n == name {
			return id, nil
		}
	}
	return NotFound, fmt.Errorf("unknown page %q", name)
}
