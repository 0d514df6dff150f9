package analysis

import (
	"math"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

func development(g *saves.GameState, hours float64) Development {
	total := len(g.Technologies)
	researched := 0
	for _, t := range g.Technologies {
		if t.Researched {
			researched++
		}
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(researched) / float64(total)
	}
	stage := ClassifyStage(hours, researched)
	return Development{
		TechProgress:      formatPercent(ratio),
		ResearchedCount:   researched,
		TotalTechnologies: total,
		MainPowerSource:   mainPowerSource(g.Power),
		Stage:             stage,
		StageLabel:        stageLabels[stage],
		Score:             DevelopmentScore(ratio, hours, stage),
	}
}

// ClassifyStage maps elapsed hours and researched technology count to a stage.
func ClassifyStage(hours float64, researched int) Stage {
	switch {
	case hours < 10 && researched < 30:
		return StageEarly
	case hours < 50 && researched < 80:
		return StageMid
	case hours < 200 && researched < 150:
		return StageLate
	default:
		return StageEndgame
	}
}

// DevelopmentScore is min(100, round(techPart + stagePart)). techPart is at
// most 50; stagePart grows with play time in the early stage and is 50 after.
func DevelopmentScore(techRatio, hours float64, stage Stage) int {
	techPart := math.Min(50, techRatio*50)
	stagePart := 50.0
	if stage == StageEarly {
		stagePart = math.Min(50, hours/10*50)
	}
	return int(math.Min(100, math.Round(techPart+stagePart)))
}

func mainPowerSource(p *saves.PowerStats) string {
	if p == nil {
		return fallbackMods
	}
	for _, src := range powerSourcePriority {
		if p.Production[src.Key] > 0 {
			return src.Label
		}
	}
	return fallbackMods
}
