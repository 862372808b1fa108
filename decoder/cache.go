package decoder

import (
	"github.com/sleptworld/rbufr/catalog"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// cache resolves a descriptor key against a decoder's loaded catalogs,
// preferring a local-table hit over the master table (spec §4.5).
type cache struct {
	masterB *catalog.BCatalog
	masterD *catalog.DCatalog
	localB  *catalog.BCatalog
	localD  *catalog.DCatalog
}

func newCache(d *Decoder) *cache {
	return &cache{
		masterB: d.masterB,
		masterD: d.masterD,
		localB:  d.localB,
		localD:  d.localD,
	}
}

func (c *cache) getB(key fxy.FXY) (tabentry.BEntry, bool) {
	if c.localB != nil {
		if e, ok := c.localB.Get(key); ok {
			return e, true
		}
	}
	return c.masterB.Get(key)
}

func (c *cache) getD(key fxy.FXY) (tabentry.DEntry, bool) {
	if c.localD != nil {
		if e, ok := c.localD.Get(key); ok {
			return e, true
		}
	}
	return c.masterD.Get(key)
}
