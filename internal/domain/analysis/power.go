package analysis

import "github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"

func power(p *saves.PowerStats) PowerReport {
	var produced, consumed float64
	if p != nil {
		for _, v := range p.Production {
			produced += v
		}
		consumed = p.Consumption
	}
	if consumed < 1 {
		consumed = 1
	}
	ratio := produced / consumed
	return PowerReport{
		Production:  produced,
		Consumption: consumed,
		Ratio:       formatRatio(ratio),
		Status:      ClassifyPower(ratio),
	}
}

// ClassifyPower maps a production/consumption ratio to a status.
func ClassifyPower(ratio float64) PowerStatus {
	switch {
	case ratio >= powerSufficientRatio:
		return PowerSufficient
	case ratio >= powerTightRatio:
		return PowerTight
	default:
		return PowerInsufficient
	}
}
