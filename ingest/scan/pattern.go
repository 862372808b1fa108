// Package scan discovers catalog source CSVs on disk by filename
// convention (§6) and extracts their table kind, version, and
// center/subcenter identity without opening the files.
package scan

import (
	"regexp"
	"strconv"
)

// Kind is the table family a source CSV feeds: element (B) or sequence (D).
type Kind int

const (
	KindB Kind = iota
	KindD
)

func (k Kind) String() string {
	if k == KindB {
		return "TableB"
	}
	return "TableD"
}

// Metadata is what a Pattern extracts from a matching filename.
type Metadata struct {
	Kind      Kind
	Version   uint32
	Subcenter uint32
	HasSub    bool
	Center    uint32
	HasCenter bool
	Language  string
	IsLocal   bool
	Filename  string
}

// OutputName renders the catalog archive naming convention: local tables
// key on subcenter, master tables key on version alone.
func (m Metadata) OutputName() string {
	if m.IsLocal && m.HasSub {
		return "BUFR_" + m.Kind.String() + "_" + strconv.FormatUint(uint64(m.Subcenter), 10) + "_" + strconv.FormatUint(uint64(m.Version), 10)
	}
	return "BUFR_" + m.Kind.String() + "_" + strconv.FormatUint(uint64(m.Version), 10)
}

// Pattern matches one filename convention and can extract Metadata from it.
type Pattern interface {
	Match(filename string) (Metadata, bool)
	Glob() string
	Description() string
}

func kindFromLetter(s string) (Kind, bool) {
	switch s {
	case "B", "b":
		return KindB, true
	case "D", "d":
		return KindD, true
	default:
		return 0, false
	}
}

// wmoPattern matches WMO/CREX header-bearing CSVs, e.g.
// "BUFRCREX_TableB_en_35.csv" or "BUFR_TableD_en_40.csv".
type wmoPattern struct {
	re *regexp.Regexp
}

func newWMOPattern() wmoPattern {
	return wmoPattern{re: regexp.MustCompile(`^(?:BUFR(?:CREX)?)_Table([BD])_([a-z]{2})_(\d+)\.csv$`)}
}

func (p wmoPattern) Match(filename string) (Metadata, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Metadata{}, false
	}
	kind, ok := kindFromLetter(m[1])
	if !ok {
		return Metadata{}, false
	}
	version, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	return Metadata{
		Kind:     kind,
		Version:  uint32(version),
		Language: m[2],
		IsLocal:  false,
		Filename: filename,
	}, true
}

func (p wmoPattern) Glob() string        { return "*Table[BD]_*.csv" }
func (p wmoPattern) Description() string { return "WMO standard tables (BUFR_Table[BD]_en_*.csv)" }

// localPattern matches Météo-France local tables, e.g. "localtabb_85_20.csv".
type localPattern struct {
	re *regexp.Regexp
}

func newLocalPattern() localPattern {
	return localPattern{re: regexp.MustCompile(`^localtab([bd])_(\d+)_(\d+)\.csv$`)}
}

func (p localPattern) Match(filename string) (Metadata, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Metadata{}, false
	}
	kind, ok := kindFromLetter(m[1])
	if !ok {
		return Metadata{}, false
	}
	subcenter, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	version, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	return Metadata{
		Kind:      kind,
		Version:   uint32(version),
		Subcenter: uint32(subcenter),
		HasSub:    true,
		IsLocal:   true,
		Filename:  filename,
	}, true
}

func (p localPattern) Glob() string { return "localtab[bd]_*.csv" }
func (p localPattern) Description() string {
	return "Local tables (localtab[bd]_subcenter_version.csv)"
}

// oldMasterPattern matches the legacy unversioned master naming, e.g.
// "bufrtabb_14.csv".
type oldMasterPattern struct {
	re *regexp.Regexp
}

func newOldMasterPattern() oldMasterPattern {
	return oldMasterPattern{re: regexp.MustCompile(`^bufrtab([bd])_(\d+)\.csv$`)}
}

func (p oldMasterPattern) Match(filename string) (Metadata, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Metadata{}, false
	}
	kind, ok := kindFromLetter(m[1])
	if !ok {
		return Metadata{}, false
	}
	version, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	return Metadata{
		Kind:     kind,
		Version:  uint32(version),
		IsLocal:  false,
		Filename: filename,
	}, true
}

func (p oldMasterPattern) Glob() string        { return "bufrtab[bd]_*.csv" }
func (p oldMasterPattern) Description() string { return "Old master tables (bufrtab[bd]_version.csv)" }

// customPattern matches a flexible center/subcenter naming, e.g.
// "test_c7_sc85_tableb_v20.csv".
type customPattern struct {
	re *regexp.Regexp
}

func newCustomPattern() customPattern {
	return customPattern{re: regexp.MustCompile(`(?i).*_?c(?:enter)?_?(\d+)_sc(?:enter)?_?(\d+)_table([bd])_v?(\d+)\.csv$`)}
}

func (p customPattern) Match(filename string) (Metadata, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Metadata{}, false
	}
	center, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	subcenter, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	kind, ok := kindFromLetter(m[3])
	if !ok {
		return Metadata{}, false
	}
	version, err := strconv.ParseUint(m[4], 10, 32)
	if err != nil {
		return Metadata{}, false
	}
	return Metadata{
		Kind:      kind,
		Version:   uint32(version),
		Subcenter: uint32(subcenter),
		HasSub:    true,
		Center:    uint32(center),
		HasCenter: true,
		IsLocal:   true,
		Filename:  filename,
	}, true
}

func (p customPattern) Glob() string { return "*_c*_sc*_table*_*.csv" }
func (p customPattern) Description() string {
	return "Custom center/subcenter tables (*_c{center}_sc{subcenter}_table[bd]_v{version}.csv)"
}

// DefaultPatterns returns the four recognized filename conventions, tried
// in the order a WMOPattern match should take precedence over the looser
// CustomPattern.
func DefaultPatterns() []Pattern {
	return []Pattern{
		newWMOPattern(),
		newOldMasterPattern(),
		newLocalPattern(),
		newCustomPattern(),
	}
}
