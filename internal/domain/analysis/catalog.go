package analysis

// Resource kinds tracked by the resource dimension, in report order.
var coreResources = []struct {
	Kind  string
	Label string
}{
	{"iron-ore", "铁矿"},
	{"copper-ore", "铜矿"},
	{"coal", "煤矿"},
	{"stone", "石矿"},
	{"uranium-ore", "铀矿"},
}

// Power sources by priority, highest first.
var powerSourcePriority = []struct {
	Key   string
	Label string
}{
	{"nuclear", "核能"},
	{"solar", "太阳能"},
	{"steam", "蒸汽"},
	{"thermal", "热能"},
}

const (
	StoneFurnace        = "stone-furnace"
	SteelFurnace        = "steel-furnace"
	ElectricFurnace     = "electric-furnace"
	BurnerMiningDrill   = "burner-mining-drill"
	ElectricMiningDrill = "electric-mining-drill"
	AssemblingMachine1  = "assembling-machine-1"
	AssemblingMachine2  = "assembling-machine-2"
	AssemblingMachine3  = "assembling-machine-3"
	Lab                 = "lab"
)

// buildingCatalog lists every building counted by exact name.
var buildingCatalog = []string{
	StoneFurnace, SteelFurnace, ElectricFurnace,
	BurnerMiningDrill, ElectricMiningDrill,
	AssemblingMachine1, AssemblingMachine2, AssemblingMachine3,
	Lab,
}

// tierPair is a building category with an obsolete variant and its upgrades.
type tierPair struct {
	Obsolete string
	Upgraded []string
	Alert    string
}

var tierPairs = []tierPair{
	{Obsolete: StoneFurnace, Upgraded: []string{SteelFurnace, ElectricFurnace}, Alert: "仍有 %d 座石炉，建议升级为钢炉或电炉"},
	{Obsolete: BurnerMiningDrill, Upgraded: []string{ElectricMiningDrill}, Alert: "仍有 %d 台热能采矿机，建议替换为电力采矿机"},
}

var hostileUnits = map[string]bool{
	"small-biter": true, "medium-biter": true, "big-biter": true, "behemoth-biter": true,
	"small-spitter": true, "medium-spitter": true, "big-spitter": true, "behemoth-spitter": true,
}

var hostileNests = map[string]bool{
	"biter-spawner":   true,
	"spitter-spawner": true,
}

// Core materials checked for the stockpile suggestion.
var coreMaterials = []struct {
	Item  string
	Label string
}{
	{"iron-plate", "铁板"},
	{"copper-plate", "铜板"},
}

const (
	resourceAlertRatio      = 0.10
	lowResearchLabCount     = 10
	lowTechRatio            = 0.5
	lowStockpileThreshold   = 1000
	powerSufficientRatio    = 1.10
	powerTightRatio         = 0.90
	threatHighNestCount     = 10
	threatCriticalNestCount = 30
)

var stageLabels = map[Stage]string{
	StageEarly:   "前期",
	StageMid:     "中期",
	StageLate:    "后期",
	StageEndgame: "终局",
}
