package ipc

// SpawnCommand asks the host to place a structure or deploy a mobile unit.
// Unit is the wire name of the unit type ("TB", "SI", ...).
type SpawnCommand struct {
	Unit string `json:"unit"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// CommandBatch is everything the sidecar decided for one turn. Structures
// are applied before units, matching the host's build-then-deploy phases.
type CommandBatch struct {
	Turn       int            `json:"turn"`
	Structures []SpawnCommand `json:"structures"`
	Units      []SpawnCommand `json:"units"`
}

func (b CommandBatch) Len() int { return len(b.Structures) + len(b.Units) }
