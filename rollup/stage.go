package rollup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/refedo/OTS-sub004/models"
)

// StageEvidence bundles everything a single building offers as proof of
// stage progress: its operation events, its document submissions, and the
// log-derived production picture.
type StageEvidence struct {
	Events      []models.OperationEvent
	Submissions []models.DocumentSubmission
	Production  models.BuildingProduction
}

type stageResolver func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus

// stageResolvers is the policy table: stage codes with a dedicated evidence
// source register here, everything else falls through to the plain
// operation-event rule. Adding a policy for a new stage code is one entry.
var stageResolvers = map[string]stageResolver{
	models.StageDesignSubmitted: func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
		return resolveFromSubmission(cfg, ev, func(s models.DocumentSubmission) *models.StageStatus {
			if s.SubmissionDate == nil {
				return nil
			}
			return &models.StageStatus{
				Status:         models.StageStatusCompleted,
				EventDate:      s.SubmissionDate,
				ClientCode:     s.ClientCode,
				ClientResponse: s.ClientResponse,
			}
		})
	},
	models.StageDesignApproved: func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
		return resolveFromSubmission(cfg, ev, func(s models.DocumentSubmission) *models.StageStatus {
			if s.ApprovalDate == nil {
				return nil
			}
			return &models.StageStatus{
				Status:         models.StageStatusCompleted,
				EventDate:      s.ApprovalDate,
				ClientCode:     s.ClientCode,
				ClientResponse: s.ClientResponse,
			}
		})
	},
	models.StageProductionStarted: func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
		// Production progress averages the three in-shop processes;
		// process types with no logs count as zero.
		p := ev.Production
		progress := (p.ProcessPercentage(models.ProcessFitUp) +
			p.ProcessPercentage(models.ProcessWelding) +
			p.ProcessPercentage(models.ProcessVisualization)) / 3
		return resolveFromProgress(cfg, ev, progress)
	},
	models.StageCoatingStarted: func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
		// Either finishing process satisfies coating, so max not average.
		p := ev.Production
		progress := p.ProcessPercentage(models.ProcessGalvanization)
		if painted := p.ProcessPercentage(models.ProcessPainting); painted > progress {
			progress = painted
		}
		return resolveFromProgress(cfg, ev, progress)
	},
	models.StageDispatchingStarted: func(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
		return resolveFromProgress(cfg, ev, ev.Production.ProcessPercentage(models.ProcessDispatch))
	},
}

// ResolveStage computes the status of one catalog stage for one building.
// Out-of-scope stages are terminal: no evidence source is consulted.
func ResolveStage(cfg models.OperationStageConfig, inScope bool, ev StageEvidence) models.StageStatus {
	if !inScope {
		return models.StageStatus{
			StageCode: cfg.StageCode,
			StageName: StageDisplayName(cfg),
			Status:    models.StageStatusOutOfScope,
		}
	}
	if resolve, ok := stageResolvers[cfg.StageCode]; ok {
		return resolve(cfg, ev)
	}
	return resolveFromEvent(cfg, ev)
}

// resolveFromEvent is the default policy: completed when a matching event is
// marked Completed, pending when an event exists with any other status,
// not_started otherwise.
func resolveFromEvent(cfg models.OperationStageConfig, ev StageEvidence) models.StageStatus {
	st := models.StageStatus{
		StageCode: cfg.StageCode,
		StageName: StageDisplayName(cfg),
		Status:    models.StageStatusNotStarted,
	}
	event := matchingEvent(ev.Events, cfg.StageCode)
	if event == nil {
		return st
	}
	d := event.EventDate
	st.EventDate = &d
	if event.Status == "Completed" {
		st.Status = models.StageStatusCompleted
	} else {
		st.Status = models.StageStatusPending
	}
	return st
}

// resolveFromProgress handles the production-derived stages: an explicit
// event closes the stage regardless of tonnage, otherwise any nonzero
// progress means pending.
func resolveFromProgress(cfg models.OperationStageConfig, ev StageEvidence, progress float64) models.StageStatus {
	st := models.StageStatus{
		StageCode:          cfg.StageCode,
		StageName:          StageDisplayName(cfg),
		Status:             models.StageStatusNotStarted,
		ProgressPercentage: &progress,
	}
	if event := matchingEvent(ev.Events, cfg.StageCode); event != nil {
		d := event.EventDate
		st.EventDate = &d
		st.Status = models.StageStatusCompleted
		return st
	}
	if progress > 0 {
		st.Status = models.StageStatusPending
	}
	return st
}

func resolveFromSubmission(cfg models.OperationStageConfig, ev StageEvidence, pick func(models.DocumentSubmission) *models.StageStatus) models.StageStatus {
	var found *models.StageStatus
	for _, s := range ev.Submissions {
		if s.DocumentType != models.DocStructuralDesignPackage && s.DocumentType != models.DocStructuralDesign {
			continue
		}
		st := pick(s)
		if st == nil {
			continue
		}
		// Latest relevant date wins when several packages exist.
		if found == nil || (st.EventDate != nil && found.EventDate != nil && st.EventDate.After(*found.EventDate)) {
			found = st
		}
	}
	if found == nil {
		return models.StageStatus{
			StageCode: cfg.StageCode,
			StageName: StageDisplayName(cfg),
			Status:    models.StageStatusNotStarted,
		}
	}
	found.StageCode = cfg.StageCode
	found.StageName = StageDisplayName(cfg)
	return *found
}

// matchingEvent returns the event for this stage code with the latest event
// date, nil when none exists. Latest-date wins keeps the lookup
// deterministic when duplicates were recorded.
func matchingEvent(events []models.OperationEvent, stageCode string) *models.OperationEvent {
	var best *models.OperationEvent
	for i := range events {
		e := &events[i]
		if e.Stage != stageCode {
			continue
		}
		if best == nil || e.EventDate.After(best.EventDate) {
			best = e
		}
	}
	return best
}

var stageTitleCaser = cases.Title(language.English)

// StageDisplayName cleans the catalog name for display: trailing
// " Started"/" Start" suffixes are dropped, and a name is derived from the
// stage code when the catalog left it blank.
func StageDisplayName(cfg models.OperationStageConfig) string {
	name := cfg.StageName
	if name == "" {
		name = stageTitleCaser.String(strings.ToLower(strings.ReplaceAll(cfg.StageCode, "_", " ")))
	}
	name = strings.TrimSuffix(name, " Started")
	name = strings.TrimSuffix(name, " Start")
	return name
}
