package analysis

func threat(c entityCounts) EnemyReport {
	var units, nests int
	for name, n := range c {
		switch {
		case hostileUnits[name]:
			units += n
		case hostileNests[name]:
			nests += n
		}
	}
	level := ClassifyThreat(nests)
	out := EnemyReport{Units: units, Nests: nests, Level: level}
	switch level {
	case ThreatHigh:
		out.Alert = "敌方巢穴数量较多，威胁等级高"
	case ThreatCritical:
		out.Alert = "敌方巢穴数量极多，威胁等级危急"
	}
	return out
}

// ClassifyThreat maps a hostile nest count to a threat level.
func ClassifyThreat(nests int) ThreatLevel {
	switch {
	case nests <= 0:
		return ThreatLow
	case nests < threatHighNestCount:
		return ThreatMedium
	case nests < threatCriticalNestCount:
		return ThreatHigh
	default:
		return ThreatCritical
	}
}
