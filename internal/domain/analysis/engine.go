// Package analysis turns decoded save data into a multi-dimensional report.
//
// Analyze returns one of two variants: HeaderOnly when only the save header
// could be decoded, or Full when a simulation snapshot is present. HeaderOnly
// is total and never fails; Full fails only on a structurally invalid snapshot.
package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

const (
	fallbackSaveName = "未命名基地"
	fallbackVersion  = "未知版本"
	fallbackMods     = "—"

	snapshotRequiredHint = "仅解析到存档头信息，完整分析需要包含完整游戏快照的存档"
)

// Outcome is either HeaderOnly or Full.
type Outcome interface {
	FullAnalysisAvailable() bool
	Report() Report
	outcome()
}

// HeaderOnly is the degraded result built from header fields alone.
type HeaderOnly struct {
	Basic BasicInfo
}

func (HeaderOnly) FullAnalysisAvailable() bool { return false }
func (HeaderOnly) outcome() {}

func (h HeaderOnly) Report() Report {
	s := emptySuggestions()
	s.Suggest = append(s.Suggest, snapshotRequiredHint)
	return Report{
		FullAnalysisAvailable: false,
		Basic:                 h.Basic,
		Development:           Development{TechProgress: formatPercent(0), MainPowerSource: fallbackMods},
		Resource:              ResourceReport{Items: []ResourceItem{}, Alerts: []string{}},
		Production:            ProductionReport{Buildings: map[string]int{}, Efficiency: formatPercent(0), Alerts: []string{}},
		Power:                 PowerReport{Ratio: formatRatio(0)},
		Enemy:                 EnemyReport{},
		Suggestions:           s,
	}
}

// Full is the result of analysing a complete snapshot.
type Full struct {
	Basic       BasicInfo
	Development Development
	Resource    ResourceReport
	Production  ProductionReport
	Power       PowerReport
	Enemy       EnemyReport
	Suggestions Suggestions
}

func (Full) FullAnalysisAvailable() bool { return true }
func (Full) outcome() {}

func (f Full) Report() Report {
	return Report{
		FullAnalysisAvailable: true,
		Basic:                 f.Basic,
		Development:           f.Development,
		Resource:              f.Resource,
		Production:            f.Production,
		Power:                 f.Power,
		Enemy:                 f.Enemy,
		Suggestions:           f.Suggestions,
	}
}

// Analyze picks the variant from the presence of a snapshot.
func Analyze(data saves.SaveData) (Outcome, error) {
	if !data.HasSnapshot() {
		return AnalyzeHeaderOnly(data.Header), nil
	}
	full, err := AnalyzeFull(data.Header, *data.Snapshot)
	if err != nil {
		return nil, err
	}
	return full, nil
}

// AnalyzeHeaderOnly builds the degraded report.
func AnalyzeHeaderOnly(h saves.SaveHeader) HeaderOnly {
	return HeaderOnly{Basic: basicInfo(h, 0)}
}

// AnalyzeFull computes every dimension from the snapshot. Missing nested
// sections count as zero or empty.
func AnalyzeFull(h saves.SaveHeader, snap saves.Snapshot) (Full, error) {
	if err := validateSnapshot(snap); err != nil {
		return Full{}, saves.Analysis("snapshot is not analysable", err)
	}

	game := snap.Game
	if game == nil {
		game = &saves.GameState{}
	}
	var entities []saves.Entity
	if snap.Map != nil {
		entities = snap.Map.Entities
	}

	hours := float64(game.Ticks) / saves.TicksPerSecond / 3600
	counts := countEntities(entities)

	dev := development(game, hours)
	res := resources(game, entities)
	prod := production(counts, dev.Stage)
	pow := power(game.Power)
	enemy := threat(counts)

	return Full{
		Basic:       basicInfo(h, hours),
		Development: dev,
		Resource:    res,
		Production:  prod,
		Power:       pow,
		Enemy:       enemy,
		Suggestions: suggestions(dev, res, prod, pow, enemy, game.Inventory),
	}, nil
}

func basicInfo(h saves.SaveHeader, hours float64) BasicInfo {
	b := BasicInfo{
		SaveName:      strings.TrimSpace(h.DisplayName),
		Version:       strings.TrimSpace(h.VersionString),
		Mods:          fallbackMods,
		PlayTimeHours: round2(hours),
	}
	if b.SaveName == "" {
		b.SaveName = fallbackSaveName
	}
	if b.Version == "" {
		b.Version = fallbackVersion
	}
	names := make([]string, 0, len(h.ModList))
	for _, m := range h.ModList {
		if n := strings.TrimSpace(m.Name); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		b.Mods = strings.Join(names, ", ")
		b.ModCount = len(names)
	}
	return b
}

func validateSnapshot(snap saves.Snapshot) error {
	if g := snap.Game; g != nil {
		if g.Ticks < 0 {
			return fmt.Errorf("negative tick count %d", g.Ticks)
		}
		if g.Production != nil {
			if err := checkCounters("produced", g.Production.Produced); err != nil {
				return err
			}
			if err := checkCounters("consumed", g.Production.Consumed); err != nil {
				return err
			}
		}
		if err := checkCounters("inventory", g.Inventory); err != nil {
			return err
		}
		if g.Power != nil {
			if err := checkCounters("power production", g.Power.Production); err != nil {
				return err
			}
			if !validCounter(g.Power.Consumption) {
				return fmt.Errorf("invalid power consumption %v", g.Power.Consumption)
			}
		}
	}
	if m := snap.Map; m != nil {
		for i, e := range m.Entities {
			if !validCounter(e.Amount) {
				return fmt.Errorf("entity %d (%s) has invalid amount %v", i, e.Name, e.Amount)
			}
		}
	}
	return nil
}

func checkCounters(section string, m map[string]float64) error {
	for k, v := range m {
		if !validCounter(v) {
			return fmt.Errorf("%s counter %q has invalid value %v", section, k, v)
		}
	}
	return nil
}

func validCounter(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func formatPercent(ratio float64) string { return fmt.Sprintf("%.2f%%", ratio*100) }

func formatRatio(ratio float64) string { return fmt.Sprintf("%.2f", ratio) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
