package cpu

const (
	SNAPSHOT_LIMIT = 1 << 24 // Maximum cells in a dense memory snapshot.
)

// Memory is the sparse, self-extending cell space of the CPU.
// Unset cells read as zero; reading a cell materialises it.
type Memory struct {
	cell   map[int64]int64
	extent int64 // One past the highest materialised address.
}

// NewMemory creates a memory holding a copy of the program at address 0.
func NewMemory(prog Program) (mem *Memory) {
	mem = &Memory{
		cell: make(map[int64]int64, len(prog)),
	}

	for addr, value := range prog {
		mem.cell[int64(addr)] = value
	}
	mem.extent = int64(len(prog))

	return
}

// materialise records that addr now exists.
func (mem *Memory) materialise(addr int64) {
	if addr >= mem.extent {
		mem.extent = addr + 1
	}
}

// Read returns the value at addr, setting never-written cells to zero.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	if addr < 0 {
		err = ErrAddressNegative
		return
	}

	value, ok := mem.cell[addr]
	if !ok {
		mem.cell[addr] = 0
		mem.materialise(addr)
	}

	return
}

// Write sets the value at addr.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	if addr < 0 {
		err = ErrAddressNegative
		return
	}

	mem.cell[addr] = value
	mem.materialise(addr)

	return
}

// Peek returns the value at addr without materialising it.
func (mem *Memory) Peek(addr int64) (value int64, ok bool) {
	value, ok = mem.cell[addr]
	return
}

// Len returns the number of materialised cells.
func (mem *Memory) Len() int {
	return len(mem.cell)
}

// Extent returns one past the highest materialised address.
func (mem *Memory) Extent() int64 {
	return mem.extent
}

// Snapshot returns a dense copy of addresses 0 up to the extent.
// Returns ErrSnapshotTooLarge if the extent exceeds SNAPSHOT_LIMIT cells.
func (mem *Memory) Snapshot() (prog Program, err error) {
	if mem.extent > SNAPSHOT_LIMIT {
		err = &ErrSnapshotTooLarge{Extent: mem.extent}
		return
	}

	prog = make(Program, mem.extent)
	for addr, value := range mem.cell {
		prog[addr] = value
	}

	return
}

// Clone returns an independent copy of the memory.
func (mem *Memory) Clone() (dup *Memory) {
	dup = &Memory{
		cell:   make(map[int64]int64, len(mem.cell)),
		extent: mem.extent,
	}
	for addr, value := range mem.cell {
		dup.cell[addr] = value
	}

	return
}
