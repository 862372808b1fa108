// Package decoder implements C8, the stack-based descriptor-program
// interpreter, and C9, the array compiler fast path, plus the table
// resolution (§4.5) that wires a message's declared table versions to
// loaded Table B/D catalogs.
package decoder

import (
	"github.com/sleptworld/rbufr/catalog"
	"github.com/sleptworld/rbufr/message"
)

// Decoder holds the catalogs a single message's descriptor program is
// interpreted against: a required master Table B/D pair, and an
// optional local Table B/D pair present only when the message declares
// a local table version.
type Decoder struct {
	edition uint8

	masterB *catalog.BCatalog
	masterD *catalog.DCatalog
	localB  *catalog.BCatalog
	localD  *catalog.DCatalog
}

// New builds a Decoder from already-loaded catalogs.
func New(edition uint8, masterB *catalog.BCatalog, masterD *catalog.DCatalog, localB *catalog.BCatalog, localD *catalog.DCatalog) *Decoder {
	return &Decoder{
		edition: edition,
		masterB: masterB,
		masterD: masterD,
		localB:  localB,
		localD:  localD,
	}
}

// FromMessage resolves and loads the catalogs msg was encoded against.
// tablesDir is the base directory containing "master/" and "local/"
// archive subtrees (see tables.go for the exact file naming).
//
// Master table resolution follows P9's fallback-monotonicity rule: if
// the message's declared master table version is absent, each lower
// version down to 0 is tried in turn. Local table resolution has no
// such fallback: if local_table_version > 0 the exact local archive
// must exist, or FromMessage fails.
func FromMessage(msg *message.Message, tablesDir string) (*Decoder, error) {
	masterVersion := msg.MasterTableVersion()

	masterB, err := loadFirstValidableB(tablesDir, masterVersion)
	if err != nil {
		return nil, err
	}
	masterD, err := loadFirstValidableD(tablesDir, masterVersion)
	if err != nil {
		masterB.Close()
		return nil, err
	}

	var localB *catalog.BCatalog
	var localD *catalog.DCatalog
	if localVersion := msg.LocalTableVersion(); localVersion > 0 {
		key := uint32(msg.SubcentreID())*256 + uint32(msg.CentreID())

		localB, err = catalog.LoadB(localBPath(tablesDir, key, localVersion))
		if err != nil {
			masterB.Close()
			masterD.Close()
			return nil, err
		}

		localD, err = catalog.LoadD(localDPath(tablesDir, key, localVersion))
		if err != nil {
			masterB.Close()
			masterD.Close()
			localB.Close()
			return nil, err
		}
	}

	return New(msg.Edition(), masterB, masterD, localB, localD), nil
}

// Close unmaps every catalog this Decoder holds.
func (d *Decoder) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	record(d.masterB.Close())
	record(d.masterD.Close())
	if d.localB != nil {
		record(d.localB.Close())
	}
	if d.localD != nil {
		record(d.localD.Close())
	}
	return firstErr
}
