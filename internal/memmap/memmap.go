// Package memmap describes the EVE address space as seen from the host SPI port.
package memmap

import "fmt"

// Region is an inclusive address range with a name.
type Region struct {
	Name  string
	Begin uint32
	End   uint32
}

// Contains reports whether addr lies in the region.
func (r Region) Contains(addr uint32) bool {
	return r.Begin <= addr && addr <= r.End
}

// Size returns the region size in bytes.
func (r Region) Size() uint32 {
	return r.End - r.Begin + 1
}

// ContainsLen reports whether the n bytes starting at ptr lie in the region.
// A zero length block only needs ptr itself in range.
func (r Region) ContainsLen(ptr, n uint32) bool {
	if !r.Contains(ptr) {
		return false
	}
	if n == 0 {
		return true
	}
	last := uint64(ptr) + uint64(n) - 1
	return last <= uint64(r.End)
}

var (
	RAMG         = Region{"RAM_G", 0x000000, 0x0FFFFF}
	ROMFont      = Region{"ROM_FONT", 0x1E0000, 0x2FFFFB}
	ROMFontAddr  = Region{"ROM_FONT_ADDR", 0x2FFFFC, 0x2FFFFF}
	RAMDL        = Region{"RAM_DL", 0x300000, 0x301FFF}
	RAMReg       = Region{"RAM_REG", 0x302000, 0x302FFF}
	RAMCmd       = Region{"RAM_CMD", 0x308000, 0x308FFF}
	RAMErrReport = Region{"RAM_ERR_REPORT", 0x309800, 0x3098FF}
	Flash        = Region{"FLASH", 0x800000, 0x107FFFFF}
)

// Regions lists the address map in ascending order.
var Regions = []Region{RAMG, ROMFont, ROMFontAddr, RAMDL, RAMReg, RAMCmd, RAMErrReport, Flash}

// RegCmdbWrite is the co-processor FIFO write port. Writes to it do not advance the address.
const RegCmdbWrite uint32 = 0x302578

// RegionOf returns the region containing addr.
func RegionOf(addr uint32) (Region, bool) {
	for _, r := range Regions {
		if r.Contains(addr) {
			return r, true
		}
	}
	return Region{}, false
}

// Name returns the region name for addr, or "(unknown)".
func Name(addr uint32) string {
	if r, ok := RegionOf(addr); ok {
		return r.Name
	}
	return "(unknown)"
}

// Advance moves addr forward by offset bytes.
// RAM_CMD is a ring buffer; REG_CMDB_WRITE is a fixed port.
func Advance(addr, offset uint32) uint32 {
	switch {
	case RAMCmd.Contains(addr):
		return RAMCmd.Begin + (addr-RAMCmd.Begin+offset)%RAMCmd.Size()
	case addr == RegCmdbWrite:
		return addr
	}
	return addr + offset
}

// Address is a host address cursor with the region it was last resolved in.
type Address struct {
	Val    uint32
	Region Region
	Mapped bool
}

// Resolve builds an Address for v.
func Resolve(v uint32) Address {
	r, ok := RegionOf(v)
	return Address{Val: v, Region: r, Mapped: ok}
}

// Advance returns the cursor moved by offset, re-resolved.
func (a Address) Advance(offset uint32) Address {
	return Resolve(Advance(a.Val, offset))
}

// IsCmdbWrite is true at the REG_CMDB_WRITE port.
func (a Address) IsCmdbWrite() bool {
	return a.Val == RegCmdbWrite
}

func (a Address) String() string {
	return fmt.Sprintf("0x%06X", a.Val)
}
