package rollup

import (
	"strings"

	"github.com/refedo/OTS-sub004/models"
)

// stageScopeRules maps stage codes to the scope-of-work phases that make
// them relevant. Stage codes absent from the table are always in scope.
var stageScopeRules = map[string][]string{
	models.StageDesignSubmitted:    {"Design", "Engineering"},
	models.StageDesignApproved:     {"Design", "Engineering"},
	models.StageShopSubmitted:      {"Shop Drawing"},
	models.StageShopApproved:       {"Shop Drawing"},
	models.StageProductionStarted:  {"Fabrication", "Production"},
	models.StageCoatingStarted:     {"Fabrication", "Production"},
	models.StageDispatchingStarted: {"Delivery", "Fabrication", "Production"},
	models.StageErectionStarted:    {"Erection"},
	models.StageArchApproved:       {"Architectural"},
}

// StageInScope reports whether a stage applies to a project given its
// declared scope of work. An empty scope means no restriction.
func StageInScope(stageCode string, scopeOfWork []string) bool {
	if len(scopeOfWork) == 0 {
		return true
	}
	phases, restricted := stageScopeRules[stageCode]
	if !restricted {
		return true
	}
	for _, want := range phases {
		for _, have := range scopeOfWork {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return true
			}
		}
	}
	return false
}

// DisplayStages filters the global stage catalog down to the stages shown at
// building level: project-level milestones, procurement, and any
// "...COMPLETED" terminal codes are dropped. Order is preserved.
func DisplayStages(configs []models.OperationStageConfig) []models.OperationStageConfig {
	out := make([]models.OperationStageConfig, 0, len(configs))
	for _, cfg := range configs {
		switch {
		case cfg.StageCode == models.StageContractSigned,
			cfg.StageCode == models.StageDownPaymentReceived,
			cfg.StageCode == models.StageProcurementStarted:
			continue
		case strings.Contains(cfg.StageCode, "COMPLETED"):
			continue
		}
		out = append(out, cfg)
	}
	return out
}
