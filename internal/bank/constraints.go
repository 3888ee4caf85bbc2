package bank

import "slices"

// Constraints is the undirected must-not-coadminister relation over item
// IDs: once either side of a pair is administered, the other side is
// ineligible for the rest of the session.
type Constraints struct {
	pairs    [][2]string
	partners map[string][]string
}

// NewConstraints builds the relation from exclusion pairs. Duplicate and
// mirrored pairs collapse into one edge.
func NewConstraints(pairs [][2]string) *Constraints {
	c := &Constraints{partners: make(map[string][]string)}
	for _, p := range pairs {
		if c.Forbidden(p[0], p[1]) {
			continue
		}
		c.pairs = append(c.pairs, p)
		c.partners[p[0]] = append(c.partners[p[0]], p[1])
		c.partners[p[1]] = append(c.partners[p[1]], p[0])
	}
	return c
}

// Partners returns every item excluded by administering the given item.
func (c *Constraints) Partners(id string) []string {
	if c == nil {
		return nil
	}
	return c.partners[id]
}

// Forbidden reports whether two items form an excluded pair.
func (c *Constraints) Forbidden(a, b string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.partners[a], b)
}

// Pairs returns the deduplicated exclusion pairs.
func (c *Constraints) Pairs() [][2]string {
	if c == nil {
		return nil
	}
	return c.pairs
}

// Len returns the number of exclusion edges.
func (c *Constraints) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pairs)
}
