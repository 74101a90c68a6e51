package catalog

import "fmt"

// Catalog is a read-only set of shops keyed by identifier. It holds tens of
// records at most, so lookups are a linear scan.
type Catalog struct {
	shops []Shop
}

func New(shops []Shop) *Catalog {
	c := &Catalog{shops: make([]Shop, len(shops))}
	copy(c.shops, shops)
	return c
}

// Builtin returns the catalog backed by the fixed sample shops.
func Builtin() *Catalog {
	return New(builtin)
}

func (c *Catalog) Lookup(id int) (Shop, error) {
	for _, s := range c.shops {
		if s.ID == id {
			return s, nil
		}
	}
	return Shop{}, fmt.Errorf("shop %d: %w", id, ErrShopNotFound)
}

func (c *Catalog) All() []Shop {
	out := make([]Shop, len(c.shops))
	copy(out, c.shops)
	return out
}

func (c *Catalog) Len() int {
	return len(c.shops)
}
