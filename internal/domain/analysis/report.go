package analysis

// Report is the rendered analysis payload. Both outcome variants produce the
// same shape so clients can rely on every dimension being present.
type Report struct {
	FullAnalysisAvailable bool             `json:"fullAnalysisAvailable"`
	Basic                 BasicInfo        `json:"basic"`
	Development           Development      `json:"development"`
	Resource              ResourceReport   `json:"resource"`
	Production            ProductionReport `json:"production"`
	Power                 PowerReport      `json:"power"`
	Enemy                 EnemyReport      `json:"enemy"`
	Suggestions           Suggestions      `json:"suggestions"`
}

type BasicInfo struct {
	SaveName      string  `json:"saveName"`
	Version       string  `json:"version"`
	Mods          string  `json:"mods"`
	ModCount      int     `json:"modCount"`
	PlayTimeHours float64 `json:"playTimeHours"`
}

// Stage enum
type Stage string

const (
	StageEarly   Stage = "early"
	StageMid     Stage = "mid"
	StageLate    Stage = "late"
	StageEndgame Stage = "endgame"
)

type Development struct {
	TechProgress      string `json:"techProgress"`
	ResearchedCount   int    `json:"researchedCount"`
	TotalTechnologies int    `json:"totalTechnologies"`
	MainPowerSource   string `json:"mainPowerSource"`
	Stage             Stage  `json:"stage"`
	StageLabel        string `json:"stageLabel"`
	Score             int    `json:"score"`
}

type ResourceItem struct {
	Kind      string  `json:"kind"`
	Label     string  `json:"label"`
	Mined     float64 `json:"mined"`
	Storage   float64 `json:"storage"`
	Remaining float64 `json:"remaining"`
}

type ResourceReport struct {
	Items  []ResourceItem `json:"items"`
	Alerts []string       `json:"alerts"`
}

type ProductionReport struct {
	Buildings  map[string]int `json:"buildings"`
	Efficiency string         `json:"efficiency"`
	Alerts     []string       `json:"alerts"`
}

// PowerStatus enum
type PowerStatus string

const (
	PowerSufficient   PowerStatus = "sufficient"
	PowerTight        PowerStatus = "tight"
	PowerInsufficient PowerStatus = "insufficient"
)

// PowerReport.Status is empty, and omitted, when there is no snapshot.
type PowerReport struct {
	Production  float64     `json:"production"`
	Consumption float64     `json:"consumption"`
	Ratio       string      `json:"ratio"`
	Status      PowerStatus `json:"status,omitempty"`
}

// ThreatLevel enum
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

// EnemyReport.Level is empty, and omitted, when there is no snapshot.
type EnemyReport struct {
	Units int         `json:"units"`
	Nests int         `json:"nests"`
	Level ThreatLevel `json:"level,omitempty"`
	Alert string      `json:"alert,omitempty"`
}

// Suggestions are grouped by priority bucket.
type Suggestions struct {
	Urgent    []string `json:"urgent"`
	Important []string `json:"important"`
	Suggest   []string `json:"suggest"`
}

func emptySuggestions() Suggestions {
	return Suggestions{Urgent: []string{}, Important: []string{}, Suggest: []string{}}
}
