// Package formats provides readers and writers for river map files.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
)

// River map format errors.
var (
	ErrInvalidRiverMagic       = errors.New("invalid river map magic: expected 'RIVM'")
	ErrUnsupportedRiverVersion = errors.New("unsupported river map version")
	ErrTruncatedRiverData      = errors.New("truncated river map data")
	ErrInvalidRiverDimensions  = errors.New("invalid river map dimensions")
	ErrUnknownCellSymbol       = errors.New("unknown river map symbol")
)

const (
	riverMagic   = "RIVM"
	maxRiverSide = 4096
)

// RiverMapVersion represents the file version.
type RiverMapVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v RiverMapVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// hasCellPenalty reports whether cells carry an explicit penalty byte (1.1+).
func (v RiverMapVersion) hasCellPenalty() bool {
	return v.Major > 1 || v.Minor >= 1
}

// CellType is the terrain of a river map cell.
type CellType uint8

// Cell type constants.
const (
	CellBank     CellType = 0 // Dry land
	CellChannel  CellType = 1 // Open water
	CellShallows CellType = 2 // Slow, shallow water
	CellRapids   CellType = 3 // Fast water, costly to swim against
	CellDam      CellType = 4 // Impassable structure
	CellLadder   CellType = 5 // Fish ladder through a dam
)

var cellSymbols = map[byte]CellType{
	'#': CellBank,
	'.': CellChannel,
	',': CellShallows,
	'~': CellRapids,
	'D': CellDam,
	'L': CellLadder,
}

// String returns a human-readable cell type name.
func (t CellType) String() string {
	switch t {
	case CellBank:
		return "Bank"
	case CellChannel:
		return "Channel"
	case CellShallows:
		return "Shallows"
	case CellRapids:
		return "Rapids"
	case CellDam:
		return "Dam"
	case CellLadder:
		return "Ladder"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable reports whether fish can swim through the cell.
func (t CellType) IsWalkable() bool {
	switch t {
	case CellChannel, CellShallows, CellRapids, CellLadder:
		return true
	}
	return false
}

// BasePenalty is the movement penalty the terrain adds on its own.
func (t CellType) BasePenalty() int {
	switch t {
	case CellShallows:
		return 5
	case CellRapids:
		return 20
	case CellLadder:
		return 10
	}
	return 0
}

// Symbol returns the text-map character for the type.
func (t CellType) Symbol() byte {
	for sym, ct := range cellSymbols {
		if ct == t {
			return sym
		}
	}
	return '?'
}

// RiverCell is one cell of a river map.
type RiverCell struct {
	Type    CellType
	Penalty uint8 // Extra penalty on top of the terrain's base penalty
}

// TotalPenalty returns the movement penalty of the cell.
func (c *RiverCell) TotalPenalty() int {
	return c.Type.BasePenalty() + int(c.Penalty)
}

// RiverMap is a parsed river map. Row 0 is the downstream edge.
type RiverMap struct {
	Version RiverMapVersion
	Width   uint32
	Height  uint32
	Cells   []RiverCell
}

// NewRiverMap creates a map of the given size filled with bank cells.
func NewRiverMap(width, height uint32) *RiverMap {
	return &RiverMap{
		Version: RiverMapVersion{Major: 1, Minor: 1},
		Width:   width,
		Height:  height,
		Cells:   make([]RiverCell, int(width*height)),
	}
}

// GetCell returns the cell at the given coordinates.
// Returns nil if coordinates are out of bounds.
func (m *RiverMap) GetCell(x, y int) *RiverCell {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return nil
	}
	return &m.Cells[y*int(m.Width)+x]
}

// IsWalkable checks if the cell at (x, y) is walkable.
func (m *RiverMap) IsWalkable(x, y int) bool {
	cell := m.GetCell(x, y)
	if cell == nil {
		return false
	}
	return cell.Type.IsWalkable()
}

// CountByType returns the count of cells for each type.
func (m *RiverMap) CountByType() map[CellType]int {
	counts := make(map[CellType]int)
	for _, cell := range m.Cells {
		counts[cell.Type]++
	}
	return counts
}

// ParseRiverMap parses a binary river map.
func ParseRiverMap(data []byte) (*RiverMap, error) {
	if len(data) < 14 {
		return nil, ErrTruncatedRiverData
	}

	if string(data[0:4]) != riverMagic {
		return nil, ErrInvalidRiverMagic
	}

	// Version is stored as [minor, major]
	version := RiverMapVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 || version.Minor > 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRiverVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedRiverData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedRiverData)
	}
	if width == 0 || height == 0 || width > maxRiverSide || height > maxRiverSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidRiverDimensions, width, height)
	}

	m := &RiverMap{
		Version: version,
		Width:   width,
		Height:  height,
		Cells:   make([]RiverCell, int(width*height)),
	}

	for i := range m.Cells {
		t, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: reading cell %d type", ErrTruncatedRiverData, i)
		}
		m.Cells[i].Type = CellType(t)
		if version.hasCellPenalty() {
			p, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("%w: reading cell %d penalty", ErrTruncatedRiverData, i)
			}
			m.Cells[i].Penalty = p
		}
	}

	return m, nil
}

// Encode serializes the map in the current (1.1) binary format.
func (m *RiverMap) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(riverMagic)
	buf.WriteByte(1) // minor
	buf.WriteByte(1) // major
	_ = binary.Write(buf, binary.LittleEndian, m.Width)
	_ = binary.Write(buf, binary.LittleEndian, m.Height)
	for _, c := range m.Cells {
		buf.WriteByte(byte(c.Type))
		buf.WriteByte(c.Penalty)
	}
	return buf.Bytes()
}

// ParseRiverMapText parses a text map: one line per row, one symbol per cell.
// Symbols: '#' bank, '.' channel, ',' shallows, '~' rapids, 'D' dam, 'L' ladder.
// Blank lines and lines starting with ';' are skipped.
func ParseRiverMapText(text string) (*RiverMap, error) {
	var rows []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading text map: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidRiverDimensions)
	}

	width := len(rows[0])
	if width > maxRiverSide || len(rows) > maxRiverSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidRiverDimensions, width, len(rows))
	}

	m := NewRiverMap(uint32(width), uint32(len(rows)))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidRiverDimensions, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			t, ok := cellSymbols[row[x]]
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownCellSymbol, row[x], x, y)
			}
			m.Cells[y*width+x].Type = t
		}
	}
	return m, nil
}

// Text renders the map in the text format accepted by ParseRiverMapText.
func (m *RiverMap) Text() string {
	var sb strings.Builder
	for y := 0; y < int(m.Height); y++ {
		for x := 0; x < int(m.Width); x++ {
			sb.WriteByte(m.Cells[y*int(m.Width)+x].Type.Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LoadRiverMapFile reads a river map from disk. Files starting with the
// binary magic are parsed as binary, anything else as text.
func LoadRiverMapFile(path string) (*RiverMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading river map file: %w", err)
	}
	if bytes.HasPrefix(data, []byte(riverMagic)) {
		return ParseRiverMap(data)
	}
	return ParseRiverMapText(string(data))
}
