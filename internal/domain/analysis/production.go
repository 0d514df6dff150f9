package analysis

import (
	"fmt"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// entityCounts is a per-name tally over map entities.
type entityCounts map[string]int

func countEntities(entities []saves.Entity) entityCounts {
	c := make(entityCounts)
	for _, e := range entities {
		c[e.Name]++
	}
	return c
}

func production(c entityCounts, stage Stage) ProductionReport {
	out := ProductionReport{
		Buildings: make(map[string]int, len(buildingCatalog)),
		Alerts:    []string{},
	}
	for _, name := range buildingCatalog {
		out.Buildings[name] = c[name]
	}

	upgraded, obsolete := 0, 0
	for _, tp := range tierPairs {
		old := c[tp.Obsolete]
		obsolete += old
		for _, u := range tp.Upgraded {
			upgraded += c[u]
		}
		if old > 0 {
			out.Alerts = append(out.Alerts, fmt.Sprintf(tp.Alert, old))
		}
	}
	ratio := 0.0
	if upgraded+obsolete > 0 {
		ratio = float64(upgraded) / float64(upgraded+obsolete)
	}
	out.Efficiency = formatPercent(ratio)

	if stage == StageEarly && c[Lab] < lowResearchLabCount {
		out.Alerts = append(out.Alerts, fmt.Sprintf("研究中心数量偏少（%d 座），科研速度受限", c[Lab]))
	}
	return out
}
