package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/analysis"
)

const maxPriorities = 8

// Heuristic answers in the advisor schema without calling a model.
// It ranks the report's own suggestions and alerts.
type Heuristic struct{}

func (Heuristic) Advise(_ context.Context, reportJSON string) (string, error) {
	var r analysis.Report
	if err := json.Unmarshal([]byte(reportJSON), &r); err != nil {
		return "", fmt.Errorf("decode report: %w", err)
	}
	b, err := json.Marshal(AdviseFromReport(r))
	if err != nil {
		return "", fmt.Errorf("encode advice: %w", err)
	}
	return string(b), nil
}

// AdviseFromReport builds advice directly from a report.
func AdviseFromReport(r analysis.Report) ai.Advice {
	out := ai.Advice{SaveName: r.Basic.SaveName, Priorities: make([]ai.Priority, 0, maxPriorities)}

	add := func(severity, category, title, detail string) {
		if len(out.Priorities) == maxPriorities {
			return
		}
		out.Priorities = append(out.Priorities, ai.Priority{
			Title:    title,
			Category: category,
			Severity: severity,
			Detail:   detail,
		})
	}

	if !r.FullAnalysisAvailable {
		out.Summary = fmt.Sprintf("%s (%s): 仅有基础信息, 无法评估工厂状态", r.Basic.SaveName, r.Basic.Version)
		for _, s := range r.Suggestions.Suggest {
			add("suggest", "general", s, s)
		}
		out.Advice = "提供包含完整快照的存档以获得详细建议"
		return out
	}

	if r.Enemy.Alert != "" {
		add("urgent", "defense", r.Enemy.Alert, fmt.Sprintf("%d 个敌方单位, %d 个巢穴", r.Enemy.Units, r.Enemy.Nests))
	}
	for _, s := range r.Suggestions.Urgent {
		add("urgent", categoryOf(s), s, s)
	}
	for _, a := range r.Resource.Alerts {
		add("important", "resource", a, a)
	}
	for _, a := range r.Production.Alerts {
		add("important", "production", a, a)
	}
	for _, s := range r.Suggestions.Important {
		add("important", categoryOf(s), s, s)
	}
	for _, s := range r.Suggestions.Suggest {
		add("suggest", categoryOf(s), s, s)
	}

	out.Summary = fmt.Sprintf("%s: %s, 科技进度 %s, 评分 %d, 电力 %s",
		r.Basic.SaveName, r.Development.StageLabel, r.Development.TechProgress, r.Development.Score, r.Power.Status)

	switch {
	case r.Enemy.Level == analysis.ThreatCritical || r.Power.Status == analysis.PowerInsufficient:
		out.Advice = "先稳住电力和防御, 再考虑扩张"
	case len(r.Resource.Alerts)+len(r.Production.Alerts) > 0:
		out.Advice = "优先解决资源和产线瓶颈"
	default:
		out.Advice = "基地运行良好, 可以继续推进科技"
	}
	return out
}

var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"电力", "power"},
	{"矿", "resource"},
	{"敌方", "defense"},
	{"科技", "research"},
	{"生产", "production"},
	{"材料", "production"},
}

func categoryOf(s string) string {
	for _, k := range categoryKeywords {
		if strings.Contains(s, k.keyword) {
			return k.category
		}
	}
	return "general"
}
