package analysis

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

func hoursToTicks(h float64) int64 {
	return int64(h * 3600 * saves.TicksPerSecond)
}

func repeat(name string, n int, amount float64) []saves.Entity {
	out := make([]saves.Entity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, saves.Entity{Name: name, Amount: amount})
	}
	return out
}

func fixtureSnapshot() saves.Snapshot {
	techs := make([]saves.Technology, 100)
	for i := range techs {
		techs[i] = saves.Technology{Name: "tech", Researched: i < 40}
	}
	var entities []saves.Entity
	entities = append(entities, repeat(StoneFurnace, 2, 0)...)
	entities = append(entities, repeat(SteelFurnace, 6, 0)...)
	entities = append(entities, repeat(ElectricMiningDrill, 4, 0)...)
	entities = append(entities, repeat(Lab, 3, 0)...)
	entities = append(entities, repeat("biter-spawner", 12, 0)...)
	entities = append(entities, repeat("small-biter", 5, 0)...)
	entities = append(entities,
		saves.Entity{Name: "iron-ore", Type: "resource", Amount: 50},
		saves.Entity{Name: "copper-ore", Type: "resource", Amount: 5000},
	)
	return saves.Snapshot{
		Game: &saves.GameState{
			Ticks:        hoursToTicks(20),
			Technologies: techs,
			Production: &saves.ProductionStats{
				Produced: map[string]float64{"iron-ore": 1000, "copper-ore": 1000},
			},
			Inventory: map[string]float64{"iron-ore": 300, "iron-plate": 5000, "copper-plate": 200},
			Power: &saves.PowerStats{
				Production:  map[string]float64{"nuclear": 0, "solar": 500, "steam": 600},
				Consumption: 1000,
			},
		},
		Map: &saves.MapState{Entities: entities},
	}
}

func TestAnalyze_HeaderOnlyIsTotal(t *testing.T) {
	headers := []saves.SaveHeader{
		{},
		{DisplayName: "  ", VersionString: ""},
		{DisplayName: "Megabase", VersionString: "1.1.110", ModList: []saves.Mod{{Name: "base"}, {Name: "space-age"}}},
	}
	for _, h := range headers {
		out, err := Analyze(saves.SaveData{Header: h})
		require.NoError(t, err)
		require.IsType(t, HeaderOnly{}, out)
		assert.False(t, out.FullAnalysisAvailable())

		r := out.Report()
		assert.False(t, r.FullAnalysisAvailable)
		assert.Empty(t, r.Suggestions.Urgent)
		assert.Empty(t, r.Suggestions.Important)
		assert.Equal(t, []string{snapshotRequiredHint}, r.Suggestions.Suggest)
		assert.Empty(t, r.Resource.Items)
		assert.Zero(t, r.Enemy.Nests)
		assert.Zero(t, r.Development.Score)
	}
}

func TestAnalyzeHeaderOnly_Sentinels(t *testing.T) {
	b := AnalyzeHeaderOnly(saves.SaveHeader{}).Basic
	assert.Equal(t, "未命名基地", b.SaveName)
	assert.Equal(t, "未知版本", b.Version)
	assert.Equal(t, "—", b.Mods)
	assert.Zero(t, b.ModCount)

	b = AnalyzeHeaderOnly(saves.SaveHeader{
		DisplayName:   "Megabase",
		VersionString: "1.1.110",
		ModList:       []saves.Mod{{Name: "base"}, {Name: ""}, {Name: "quality"}},
	}).Basic
	assert.Equal(t, "Megabase", b.SaveName)
	assert.Equal(t, "1.1.110", b.Version)
	assert.Equal(t, "base, quality", b.Mods)
	assert.Equal(t, 2, b.ModCount)
}

func TestAnalyze_EmptySnapshotIsDegraded(t *testing.T) {
	out, err := Analyze(saves.SaveData{Snapshot: &saves.Snapshot{}})
	require.NoError(t, err)
	assert.False(t, out.FullAnalysisAvailable())
}

func TestAnalyzeFull_Fixture(t *testing.T) {
	snap := fixtureSnapshot()
	out, err := Analyze(saves.SaveData{Header: saves.SaveHeader{DisplayName: "Base"}, Snapshot: &snap})
	require.NoError(t, err)
	require.True(t, out.FullAnalysisAvailable())
	r := out.Report()

	assert.Equal(t, 20.0, r.Basic.PlayTimeHours)

	assert.Equal(t, "40.00%", r.Development.TechProgress)
	assert.Equal(t, 40, r.Development.ResearchedCount)
	assert.Equal(t, 100, r.Development.TotalTechnologies)
	assert.Equal(t, StageMid, r.Development.Stage)
	assert.Equal(t, "太阳能", r.Development.MainPowerSource)
	assert.Equal(t, 70, r.Development.Score)

	require.Len(t, r.Resource.Items, len(coreResources))
	assert.Equal(t, ResourceItem{Kind: "iron-ore", Label: "铁矿", Mined: 1000, Storage: 300, Remaining: 50}, r.Resource.Items[0])
	require.Len(t, r.Resource.Alerts, 1)
	assert.Contains(t, r.Resource.Alerts[0], "铁矿")

	assert.Equal(t, 2, r.Production.Buildings[StoneFurnace])
	assert.Equal(t, 0, r.Production.Buildings[BurnerMiningDrill])
	assert.Equal(t, "83.33%", r.Production.Efficiency)
	require.Len(t, r.Production.Alerts, 1)
	assert.Contains(t, r.Production.Alerts[0], "石炉")

	assert.Equal(t, "1.10", r.Power.Ratio)
	assert.Equal(t, PowerSufficient, r.Power.Status)

	assert.Equal(t, 5, r.Enemy.Units)
	assert.Equal(t, 12, r.Enemy.Nests)
	assert.Equal(t, ThreatHigh, r.Enemy.Level)
	assert.NotEmpty(t, r.Enemy.Alert)

	assert.Len(t, r.Suggestions.Urgent, 1)
	assert.Len(t, r.Suggestions.Important, 2)
	require.Len(t, r.Suggestions.Suggest, 2)
	assert.Contains(t, r.Suggestions.Suggest[1], "铜板")
	assert.NotContains(t, r.Suggestions.Suggest[1], "铁板")
}

func TestAnalyzeFull_MissingSectionsAreZero(t *testing.T) {
	cases := map[string]saves.Snapshot{
		"game only":       {Game: &saves.GameState{}},
		"map only":        {Map: &saves.MapState{}},
		"nil inner stats": {Game: &saves.GameState{Ticks: 10}, Map: &saves.MapState{Entities: nil}},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			full, err := AnalyzeFull(saves.SaveHeader{}, snap)
			require.NoError(t, err)
			assert.Equal(t, "0.00%", full.Development.TechProgress)
			assert.Equal(t, "—", full.Development.MainPowerSource)
			assert.Equal(t, "0.00", full.Power.Ratio)
			assert.Equal(t, 1.0, full.Power.Consumption)
			assert.Equal(t, PowerInsufficient, full.Power.Status)
			assert.Equal(t, ThreatLow, full.Enemy.Level)
			assert.Empty(t, full.Resource.Alerts)
			assert.Equal(t, "0.00%", full.Production.Efficiency)
		})
	}
}

func TestAnalyzeFull_InvalidSnapshot(t *testing.T) {
	cases := map[string]saves.Snapshot{
		"negative ticks": {Game: &saves.GameState{Ticks: -1}},
		"nan inventory":  {Game: &saves.GameState{Inventory: map[string]float64{"iron-plate": math.NaN()}}},
		"negative power": {Game: &saves.GameState{Power: &saves.PowerStats{Consumption: -5}}},
		"negative ore":   {Map: &saves.MapState{Entities: []saves.Entity{{Name: "coal", Amount: -1}}}},
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Analyze(saves.SaveData{Snapshot: &snap})
			require.Error(t, err)
			assert.ErrorIs(t, err, saves.ErrAnalysis)
		})
	}
}

func TestClassifyPower(t *testing.T) {
	tests := []struct {
		ratio float64
		want  PowerStatus
	}{
		{2.0, PowerSufficient},
		{1.10, PowerSufficient},
		{1.09, PowerTight},
		{0.90, PowerTight},
		{0.89, PowerInsufficient},
		{0, PowerInsufficient},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPower(tt.ratio), "ratio %v", tt.ratio)
	}
}

func TestPower_ComputedBoundaries(t *testing.T) {
	assert.Equal(t, PowerSufficient, power(&saves.PowerStats{Production: map[string]float64{"steam": 110}, Consumption: 100}).Status)
	assert.Equal(t, PowerTight, power(&saves.PowerStats{Production: map[string]float64{"steam": 90}, Consumption: 100}).Status)
	assert.Equal(t, PowerInsufficient, power(&saves.PowerStats{Production: map[string]float64{"steam": 89}, Consumption: 100}).Status)
}

func TestClassifyThreat(t *testing.T) {
	tests := []struct {
		nests int
		want  ThreatLevel
	}{
		{0, ThreatLow},
		{1, ThreatMedium},
		{9, ThreatMedium},
		{10, ThreatHigh},
		{29, ThreatHigh},
		{30, ThreatCritical},
		{500, ThreatCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyThreat(tt.nests), "nests %d", tt.nests)
	}
}

func TestThreat_AlertOnlyWhenHighOrCritical(t *testing.T) {
	assert.Empty(t, threat(entityCounts{"biter-spawner": 9}).Alert)
	assert.NotEmpty(t, threat(entityCounts{"biter-spawner": 5, "spitter-spawner": 5}).Alert)
	assert.NotEmpty(t, threat(entityCounts{"spitter-spawner": 30}).Alert)
	// worms are not nests
	assert.Equal(t, ThreatLow, threat(entityCounts{"small-worm-turret": 40}).Level)
}

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		hours      float64
		researched int
		want       Stage
	}{
		{0, 0, StageEarly},
		{9.99, 29, StageEarly},
		{10, 0, StageMid},
		{5, 30, StageMid},
		{49, 79, StageMid},
		{50, 10, StageLate},
		{199, 149, StageLate},
		{200, 0, StageEndgame},
		{1, 150, StageEndgame},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStage(tt.hours, tt.researched), "hours=%v researched=%d", tt.hours, tt.researched)
	}
}

func TestDevelopmentScore(t *testing.T) {
	assert.Equal(t, 35, DevelopmentScore(0.2, 5, StageEarly))
	assert.Equal(t, 0, DevelopmentScore(0, 0, StageEarly))
	assert.Equal(t, 50, DevelopmentScore(0, 30, StageMid))
	assert.Equal(t, 100, DevelopmentScore(1, 300, StageEndgame))
	assert.Equal(t, 100, DevelopmentScore(1.5, 300, StageEndgame))
}

func TestMainPowerSourcePriority(t *testing.T) {
	p := &saves.PowerStats{Production: map[string]float64{"thermal": 1, "steam": 1, "solar": 1, "nuclear": 1}}
	assert.Equal(t, "核能", mainPowerSource(p))
	p.Production["nuclear"] = 0
	assert.Equal(t, "太阳能", mainPowerSource(p))
	assert.Equal(t, "热能", mainPowerSource(&saves.PowerStats{Production: map[string]float64{"thermal": 3}}))
	assert.Equal(t, "—", mainPowerSource(nil))
}

func TestProduction_LowResearchOnlyEarly(t *testing.T) {
	c := entityCounts{Lab: 2}
	early := production(c, StageEarly)
	require.Len(t, early.Alerts, 1)
	assert.Contains(t, early.Alerts[0], "研究中心")
	assert.Empty(t, production(c, StageLate).Alerts)
	assert.Empty(t, production(entityCounts{Lab: 10}, StageEarly).Alerts)
}

func TestSuggestions_Buckets(t *testing.T) {
	dev := Development{ResearchedCount: 9, TotalTechnologies: 10, TechProgress: "90.00%"}
	inv := map[string]float64{"iron-plate": 5000, "copper-plate": 5000}

	s := suggestions(dev, ResourceReport{}, ProductionReport{}, PowerReport{Status: PowerInsufficient, Ratio: "0.50"},
		EnemyReport{Level: ThreatCritical, Nests: 40}, inv)
	assert.Len(t, s.Urgent, 2)
	assert.Empty(t, s.Important)
	assert.Empty(t, s.Suggest)

	s = suggestions(dev, ResourceReport{}, ProductionReport{}, PowerReport{Status: PowerTight, Ratio: "0.95"},
		EnemyReport{Level: ThreatHigh, Nests: 12}, inv)
	assert.Empty(t, s.Urgent)
	assert.Len(t, s.Important, 2)

	s = suggestions(dev, ResourceReport{}, ProductionReport{}, PowerReport{Status: PowerSufficient},
		EnemyReport{Level: ThreatLow}, nil)
	require.Len(t, s.Suggest, 1)
	assert.Contains(t, s.Suggest[0], "铁板、铜板")
}

func TestResources_OnlyResourceEntitiesCount(t *testing.T) {
	snap := saves.Snapshot{
		Game: &saves.GameState{
			Production: &saves.ProductionStats{Produced: map[string]float64{"coal": 1000}},
		},
		Map: &saves.MapState{Entities: []saves.Entity{
			{Name: "coal", Type: ResourceEntityType, Amount: 10},
			{Name: "coal", Type: "item-entity", Amount: 5000},
			{Name: "coal", Amount: 5000},
		}},
	}
	full, err := AnalyzeFull(saves.SaveHeader{}, snap)
	require.NoError(t, err)

	var coal ResourceItem
	for _, it := range full.Resource.Items {
		if it.Kind == "coal" {
			coal = it
		}
	}
	assert.Equal(t, 10.0, coal.Remaining)
	require.Len(t, full.Resource.Alerts, 1)
	assert.Contains(t, full.Resource.Alerts[0], "煤矿")
	assert.Contains(t, full.Report().Suggestions.Urgent, "部分矿区即将枯竭，请尽快开拓新矿区")
}

func TestHeaderOnly_OmitsUnknownEnums(t *testing.T) {
	b, err := json.Marshal(AnalyzeHeaderOnly(saves.SaveHeader{DisplayName: "x"}).Report())
	require.NoError(t, err)

	var raw struct {
		Power map[string]any `json:"power"`
		Enemy map[string]any `json:"enemy"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.NotContains(t, raw.Power, "status")
	assert.NotContains(t, raw.Enemy, "level")
	assert.Contains(t, raw.Power, "ratio")

	full, err := AnalyzeFull(saves.SaveHeader{}, fixtureSnapshot())
	require.NoError(t, err)
	b, err = json.Marshal(full.Report())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, string(full.Power.Status), raw.Power["status"])
	assert.Equal(t, string(full.Enemy.Level), raw.Enemy["level"])
}
