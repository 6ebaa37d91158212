package layout

import "fmt"

// Builder can build layouts.
type Builder struct {
	cells []Cell
}

// WithCell adds a named cell.
func (b Builder) WithCell(name string, offset int, role Role) Builder {
	b.cells = append(append([]Cell(nil), b.cells...), Cell{
		Name:   name,
		Offset: offset,
		Role:   role,
	})
	return b
}

// WithWorkspace adds n consecutive workspace cells starting at base, named
// prefix0, prefix1 and so on.
func (b Builder) WithWorkspace(prefix string, base, n int) Builder {
	for i := 0; i < n; i++ {
		b = b.WithCell(fmt.Sprintf("%s%d", prefix, i), base+i, RoleWorkspace)
	}
	return b
}

// Build validates the cells and creates the layout.
func (b Builder) Build(name string) (*Layout, error) {
	return newLayout(name, b.cells)
}

// MustBuild is Build for layouts known to be valid. It panics on error.
func (b Builder) MustBuild(name string) *Layout {
	l, err := b.Build(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the standard layout: the scalar cells at offsets 0 to 6
// followed by the decimal workspace.
func Default() *Layout {
	return Builder{}.
		WithCell("loop", 0, RoleLoopFlag).
		WithCell("septemp", 1, RoleSeparatorTemp).
		WithCell("coefficient", 2, RoleCoefficient).
		WithCell("degree", 3, RoleDegree).
		WithCell("product", 4, RoleProduct).
		WithCell("scratch", 5, RoleScratch).
		WithCell("sepflag", 6, RoleSeparatorFlag).
		WithWorkspace("ws", 7, WorkspaceSlots).
		MustBuild("default")
}
