package analysis

import (
	"fmt"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// ResourceEntityType marks ore patches on the map.
const ResourceEntityType = "resource"

// resources reads mined and stored totals straight from the cumulative
// counters; remaining reserves are summed over resource entities that still
// hold a positive amount.
func resources(g *saves.GameState, entities []saves.Entity) ResourceReport {
	remaining := make(map[string]float64, len(coreResources))
	for _, e := range entities {
		if e.Type == ResourceEntityType && e.Amount > 0 {
			remaining[e.Name] += e.Amount
		}
	}

	var produced map[string]float64
	if g.Production != nil {
		produced = g.Production.Produced
	}

	out := ResourceReport{
		Items:  make([]ResourceItem, 0, len(coreResources)),
		Alerts: []string{},
	}
	for _, r := range coreResources {
		item := ResourceItem{
			Kind:      r.Kind,
			Label:     r.Label,
			Mined:     produced[r.Kind],
			Storage:   g.Inventory[r.Kind],
			Remaining: remaining[r.Kind],
		}
		out.Items = append(out.Items, item)
		if item.Remaining < item.Mined*resourceAlertRatio {
			out.Alerts = append(out.Alerts, fmt.Sprintf("%s剩余储量不足已开采量的 10%%（剩余 %.0f / 已开采 %.0f）",
				r.Label, item.Remaining, item.Mined))
		}
	}
	return out
}
