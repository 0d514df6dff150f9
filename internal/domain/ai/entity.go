package ai

// Priority is one ranked action item.
type Priority struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Severity string `json:"severity"` // urgent, important, suggest
	Detail   string `json:"detail"`
}

// Advice is what an advisor returns for one report.
type Advice struct {
	SaveName   string     `json:"save_name"`
	Summary    string     `json:"summary"`
	Priorities []Priority `json:"priorities"`
	Advice     string     `json:"advice"`
	Source     string     `json:"source"` // "openai" or "heuristic"
}
