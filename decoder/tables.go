package decoder

import (
	"fmt"
	"path/filepath"

	"github.com/sleptworld/rbufr/catalog"
	"github.com/sleptworld/rbufr/errs"
)

// Table archive files are named and laid out the way the reference
// loader's TableTrait::file_path does: "master/BUFR_Table{B,D}_<version>.bufrtbl"
// for master tables, "local/BUFR_Table{B,D}_<key>_<version>.bufrtbl" for
// local tables, where <key> is subcentre*256+centre.
func masterBPath(baseDir string, version uint8) string {
	return filepath.Join(baseDir, "master", fmt.Sprintf("BUFR_TableB_%d.bufrtbl", version))
}

func masterDPath(baseDir string, version uint8) string {
	return filepath.Join(baseDir, "master", fmt.Sprintf("BUFR_TableD_%d.bufrtbl", version))
}

func localBPath(baseDir string, key uint32, version uint8) string {
	return filepath.Join(baseDir, "local", fmt.Sprintf("BUFR_TableB_%d_%d.bufrtbl", key, version))
}

func localDPath(baseDir string, key uint32, version uint8) string {
	return filepath.Join(baseDir, "local", fmt.Sprintf("BUFR_TableD_%d_%d.bufrtbl", key, version))
}

// loadFirstValidableB implements P9: try the requested master version,
// then each lower version down to 0, returning the first that loads.
func loadFirstValidableB(baseDir string, requested uint8) (*catalog.BCatalog, error) {
	for v := int(requested); v >= 0; v-- {
		cat, err := catalog.LoadB(masterBPath(baseDir, uint8(v)))
		if err == nil {
			return cat, nil
		}
	}
	return nil, errs.TableNotFound(fmt.Sprintf("master Table B for version <= %d", requested))
}

func loadFirstValidableD(baseDir string, requested uint8) (*catalog.DCatalog, error) {
	for v := int(requested); v >= 0; v-- {
		cat, err := catalog.LoadD(masterDPath(baseDir, uint8(v)))
		if err == nil {
			return cat, nil
		}
	}
	return nil, errs.TableNotFound(fmt.Sprintf("master Table D for version <= %d", requested))
}
