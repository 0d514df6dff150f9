package saves

// Mod is one entry of the save's mod list.
type Mod struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SaveHeader is the metadata record produced by the header codec.
type SaveHeader struct {
	DisplayName   string `json:"name"`
	VersionString string `json:"version"`
	ModList       []Mod  `json:"modList,omitempty"`
}

// SaveData is everything decoded from one archive. Snapshot is nil when the
// codec could only recover the header.
type SaveData struct {
	Header   SaveHeader `json:"header"`
	Snapshot *Snapshot  `json:"snapshot,omitempty"`
}

// HasSnapshot reports whether a full simulation snapshot is available.
func (d SaveData) HasSnapshot() bool {
	return d.Snapshot != nil && (d.Snapshot.Game != nil || d.Snapshot.Map != nil)
}

// Snapshot is the embedded simulation state.
type Snapshot struct {
	Game *GameState `json:"gameState,omitempty"`
	Map  *MapState  `json:"mapState,omitempty"`
}

// TicksPerSecond of the simulation clock.
const TicksPerSecond = 60

type GameState struct {
	Ticks        int64              `json:"ticks"`
	Technologies []Technology       `json:"technologies,omitempty"`
	Production   *ProductionStats   `json:"production,omitempty"`
	Inventory    map[string]float64 `json:"inventory,omitempty"`
	Power        *PowerStats        `json:"power,omitempty"`
}

type Technology struct {
	Name       string `json:"name"`
	Researched bool   `json:"researched"`
}

// ProductionStats holds cumulative item counters keyed by item name.
type ProductionStats struct {
	Produced map[string]float64 `json:"produced,omitempty"`
	Consumed map[string]float64 `json:"consumed,omitempty"`
}

// PowerStats holds cumulative electric network statistics.
// Production is keyed by source kind (nuclear, solar, steam, thermal).
type PowerStats struct {
	Production  map[string]float64 `json:"production,omitempty"`
	Consumption float64            `json:"consumption"`
}

type MapState struct {
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Name   string  `json:"name"`
	Type   string  `json:"type,omitempty"`
	Force  string  `json:"force,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}
