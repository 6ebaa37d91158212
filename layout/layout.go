// Package layout is the cell layout registry of the derivative program.
//
// A Layout maps symbolic cell names to fixed tape offsets. It is built once,
// before generation starts, and never changes afterwards. Every cell lives
// for the whole program; scratch cells are shared between macros that run
// one after another, which is safe because each macro leaves its scratch
// cells at zero.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrInvalidLayout is wrapped by every layout construction error.
var ErrInvalidLayout = errors.New("invalid layout")

// WorkspaceSlots is the number of decimal workspace cells the print macro
// needs: three digits, the printed and else flags, an intermediate quotient
// and three divmod scratch cells.
const WorkspaceSlots = 9

// Role is the semantic role of a cell.
type Role int

const (
	RoleLoopFlag Role = iota
	RoleSeparatorTemp
	RoleCoefficient
	RoleDegree
	RoleProduct
	RoleScratch
	RoleSeparatorFlag
	RoleWorkspace
)

var roleNames = map[Role]string{
	RoleLoopFlag:      "loop-flag",
	RoleSeparatorTemp: "separator-temp",
	RoleCoefficient:   "coefficient",
	RoleDegree:        "degree",
	RoleProduct:       "product",
	RoleScratch:       "scratch",
	RoleSeparatorFlag: "separator-flag",
	RoleWorkspace:     "workspace",
}

// singularRoles must each be held by exactly one cell.
var singularRoles = []Role{
	RoleLoopFlag,
	RoleSeparatorTemp,
	RoleCoefficient,
	RoleDegree,
	RoleProduct,
	RoleScratch,
	RoleSeparatorFlag,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole converts a role name back to a Role.
func ParseRole(name string) (Role, error) {
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidLayout, name)
}

// Cell is one named tape slot.
type Cell struct {
	Name   string
	Offset int
	Role   Role
}

// Layout is an immutable registry of cells.
type Layout struct {
	name      string
	cells     []Cell
	byName    map[string]Cell
	byRole    map[Role]Cell
	workspace []Cell
}

// Name returns the name the layout was built with.
func (l *Layout) Name() string {
	return l.name
}

// Cell returns the cell holding a singular role. It panics for
// RoleWorkspace and for roles the layout does not hold, which Build rules
// out.
func (l *Layout) Cell(r Role) Cell {
	c, ok := l.byRole[r]
	if !ok {
		panic(fmt.Sprintf("layout %s has no single cell for role %s", l.name, r))
	}
	return c
}

// Offset is shorthand for Cell(r).Offset.
func (l *Layout) Offset(r Role) int {
	return l.Cell(r).Offset
}

// ByName looks a cell up by its name.
func (l *Layout) ByName(name string) (Cell, bool) {
	c, ok := l.byName[name]
	return c, ok
}

// Workspace returns the decimal workspace cells ordered by offset.
func (l *Layout) Workspace() []Cell {
	return append([]Cell(nil), l.workspace...)
}

// Cells returns all cells ordered by offset.
func (l *Layout) Cells() []Cell {
	return append([]Cell(nil), l.cells...)
}

// Size is one past the highest reserved offset.
func (l *Layout) Size() int {
	if len(l.cells) == 0 {
		return 0
	}
	return l.cells[len(l.cells)-1].Offset + 1
}

// Contains reports whether offset is inside the reserved region.
func (l *Layout) Contains(offset int) bool {
	return offset >= 0 && offset < l.Size()
}

// Table renders the layout as a text table.
func (l *Layout) Table() string {
	t := table.NewWriter()
	t.SetTitle("Layout " + l.name)
	t.AppendHeader(table.Row{"Offset", "Name", "Role"})
	for _, c := range l.cells {
		t.AppendRow(table.Row{c.Offset, c.Name, c.Role})
	}
	return t.Render()
}

func newLayout(name string, cells []Cell) (*Layout, error) {
	l := &Layout{
		name:   name,
		cells:  append([]Cell(nil), cells...),
		byName: make(map[string]Cell, len(cells)),
		byRole: make(map[Role]Cell, len(singularRoles)),
	}
	sort.Slice(l.cells, func(i, j int) bool {
		return l.cells[i].Offset < l.cells[j].Offset
	})

	byOffset := make(map[int]string, len(cells))
	for _, c := range l.cells {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: cell at offset %d has no name", ErrInvalidLayout, c.Offset)
		}
		if c.Offset < 0 {
			return nil, fmt.Errorf("%w: cell %s has negative offset %d", ErrInvalidLayout, c.Name, c.Offset)
		}
		if _, ok := roleNames[c.Role]; !ok {
			return nil, fmt.Errorf("%w: cell %s has unknown role %d", ErrInvalidLayout, c.Name, int(c.Role))
		}
		if _, dup := l.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate cell name %s", ErrInvalidLayout, c.Name)
		}
		if other, dup := byOffset[c.Offset]; dup {
			return nil, fmt.Errorf("%w: cells %s and %s share offset %d", ErrInvalidLayout, other, c.Name, c.Offset)
		}
		byOffset[c.Offset] = c.Name
		l.byName[c.Name] = c

		if c.Role == RoleWorkspace {
			l.workspace = append(l.workspace, c)
			continue
		}
		if other, dup := l.byRole[c.Role]; dup {
			return nil, fmt.Errorf("%w: role %s held by both %s and %s", ErrInvalidLayout, c.Role, other.Name, c.Name)
		}
		l.byRole[c.Role] = c
	}

	for _, r := range singularRoles {
		if _, ok := l.byRole[r]; !ok {
			return nil, fmt.Errorf("%w: no cell for role %s", ErrInvalidLayout, r)
		}
	}
	if len(l.workspace) < WorkspaceSlots {
		return nil, fmt.Errorf("%w: workspace has %d slots, need %d",
			ErrInvalidLayout, len(l.workspace), WorkspaceSlots)
	}

	return l, nil
}
