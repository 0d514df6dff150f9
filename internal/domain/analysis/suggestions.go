package analysis

import (
	"fmt"
	"strings"
)

// suggestions applies fixed rules per bucket. Each rule adds at most one
// message and buckets are not deduplicated against each other.
func suggestions(dev Development, res ResourceReport, prod ProductionReport, pow PowerReport,
	enemy EnemyReport, inventory map[string]float64) Suggestions {
	s := emptySuggestions()

	// urgent
	if pow.Status == PowerInsufficient {
		s.Urgent = append(s.Urgent, fmt.Sprintf("电力严重不足（供需比 %s），请立即扩建发电设施", pow.Ratio))
	}
	if len(res.Alerts) > 0 {
		s.Urgent = append(s.Urgent, "部分矿区即将枯竭，请尽快开拓新矿区")
	}
	if enemy.Level == ThreatCritical {
		s.Urgent = append(s.Urgent, fmt.Sprintf("敌方巢穴数量极多（%d 个），需立即加强防御", enemy.Nests))
	}

	// important
	if pow.Status == PowerTight {
		s.Important = append(s.Important, fmt.Sprintf("电力供应紧张（供需比 %s），建议预留扩容", pow.Ratio))
	}
	if len(prod.Alerts) > 0 {
		s.Important = append(s.Important, "存在落后或不足的生产设施，建议升级以提高效率")
	}
	if enemy.Level == ThreatHigh {
		s.Important = append(s.Important, fmt.Sprintf("敌方巢穴较多（%d 个），建议加强防御", enemy.Nests))
	}

	// suggest
	if techRatio(dev) < lowTechRatio {
		s.Suggest = append(s.Suggest, fmt.Sprintf("科技研究进度为 %s，建议增加研究投入", dev.TechProgress))
	}
	var low []string
	for _, m := range coreMaterials {
		if inventory[m.Item] < lowStockpileThreshold {
			low = append(low, m.Label)
		}
	}
	if len(low) > 0 {
		s.Suggest = append(s.Suggest, fmt.Sprintf("核心材料储备偏低（%s），建议扩大冶炼产能", strings.Join(low, "、")))
	}
	return s
}

func techRatio(dev Development) float64 {
	if dev.TotalTechnologies == 0 {
		return 0
	}
	return float64(dev.ResearchedCount) / float64(dev.TotalTechnologies)
}
