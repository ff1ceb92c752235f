package rollup

import (
	"testing"
	"time"

	"github.com/refedo/OTS-sub004/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func productionWith(pcts map[string]float64) models.BuildingProduction {
	prod := models.BuildingProduction{ByProcess: newProcessMap()}
	for pt, pct := range pcts {
		prod.ByProcess[pt] = models.ProcessProgress{Completed: pct, Total: 100}
	}
	return prod
}

func TestResolveStage_OutOfScopeIsTerminal(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageDesignSubmitted, StageName: "Design Submitted"}
	// Evidence that would otherwise complete the stage must be ignored.
	sub := date(2024, 1, 20)
	ev := StageEvidence{
		Submissions: []models.DocumentSubmission{
			{DocumentType: models.DocStructuralDesign, SubmissionDate: &sub},
		},
		Production: productionWith(nil),
	}

	st := ResolveStage(cfg, false, ev)
	if st.Status != models.StageStatusOutOfScope {
		t.Fatalf("expected out_of_scope, got %s", st.Status)
	}
	if st.EventDate != nil || st.ProgressPercentage != nil {
		t.Fatalf("out_of_scope stage must carry no evidence, got %+v", st)
	}
}

func TestResolveStage_DesignSubmitted(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageDesignSubmitted, StageName: "Design Submitted"}
	sub := date(2024, 1, 20)

	st := ResolveStage(cfg, true, StageEvidence{
		Submissions: []models.DocumentSubmission{
			{DocumentType: "Erection Method Statement", SubmissionDate: &sub},
			{DocumentType: models.DocStructuralDesignPackage, SubmissionDate: &sub, ClientCode: "B", ClientResponse: "Revise and resubmit"},
		},
		Production: productionWith(nil),
	})
	if st.Status != models.StageStatusCompleted {
		t.Fatalf("expected completed, got %s", st.Status)
	}
	if st.EventDate == nil || !st.EventDate.Equal(sub) {
		t.Fatalf("expected submission date carried, got %v", st.EventDate)
	}
	if st.ClientCode != "B" || st.ClientResponse != "Revise and resubmit" {
		t.Fatalf("client response not carried: %+v", st)
	}

	// No relevant document type: not started, never an error.
	st = ResolveStage(cfg, true, StageEvidence{
		Submissions: []models.DocumentSubmission{{DocumentType: "Erection Method Statement", SubmissionDate: &sub}},
		Production:  productionWith(nil),
	})
	if st.Status != models.StageStatusNotStarted {
		t.Fatalf("expected not_started, got %s", st.Status)
	}
}

func TestResolveStage_DesignApprovedNeedsApprovalDate(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageDesignApproved, StageName: "Design Approved"}
	sub := date(2024, 1, 20)
	app := date(2024, 1, 28)

	st := ResolveStage(cfg, true, StageEvidence{
		Submissions: []models.DocumentSubmission{
			{DocumentType: models.DocStructuralDesign, SubmissionDate: &sub},
		},
		Production: productionWith(nil),
	})
	if st.Status != models.StageStatusNotStarted {
		t.Fatalf("submitted-but-unapproved expected not_started, got %s", st.Status)
	}

	st = ResolveStage(cfg, true, StageEvidence{
		Submissions: []models.DocumentSubmission{
			{DocumentType: models.DocStructuralDesign, SubmissionDate: &sub, ApprovalDate: &app, ClientCode: "A"},
		},
		Production: productionWith(nil),
	})
	if st.Status != models.StageStatusCompleted {
		t.Fatalf("expected completed, got %s", st.Status)
	}
	if st.EventDate == nil || !st.EventDate.Equal(app) {
		t.Fatalf("expected approval date carried, got %v", st.EventDate)
	}
}

func TestResolveStage_ProductionUsesAverage(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageProductionStarted, StageName: "Production Started"}
	ev := StageEvidence{Production: productionWith(map[string]float64{
		models.ProcessFitUp:         60,
		models.ProcessWelding:       40,
		models.ProcessVisualization: 20,
	})}

	st := ResolveStage(cfg, true, ev)
	if st.ProgressPercentage == nil || !almostEqual(*st.ProgressPercentage, 40) {
		t.Fatalf("production progress expected 40, got %v", st.ProgressPercentage)
	}
	if st.Status != models.StageStatusPending {
		t.Fatalf("expected pending with nonzero progress, got %s", st.Status)
	}
	if st.StageName != "Production" {
		t.Fatalf("display name expected Production, got %q", st.StageName)
	}
}

func TestResolveStage_CoatingUsesMax(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageCoatingStarted, StageName: "Coating Started"}
	ev := StageEvidence{Production: productionWith(map[string]float64{
		models.ProcessGalvanization: 80,
		models.ProcessPainting:      20,
	})}

	st := ResolveStage(cfg, true, ev)
	if st.ProgressPercentage == nil || !almostEqual(*st.ProgressPercentage, 80) {
		t.Fatalf("coating progress expected max 80, got %v", st.ProgressPercentage)
	}
}

func TestResolveStage_DispatchingUsesDispatchPercent(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageDispatchingStarted, StageName: "Dispatching Started"}
	ev := StageEvidence{Production: productionWith(map[string]float64{models.ProcessDispatch: 25})}

	st := ResolveStage(cfg, true, ev)
	if st.ProgressPercentage == nil || !almostEqual(*st.ProgressPercentage, 25) {
		t.Fatalf("dispatch progress expected 25, got %v", st.ProgressPercentage)
	}
	if st.StageName != "Dispatching" {
		t.Fatalf("display name expected Dispatching, got %q", st.StageName)
	}
}

func TestResolveStage_EventClosesProgressStage(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageProductionStarted, StageName: "Production Started"}
	when := date(2024, 2, 10)
	ev := StageEvidence{
		Events:     []models.OperationEvent{{Stage: models.StageProductionStarted, EventDate: when, Status: "Recorded"}},
		Production: productionWith(nil),
	}

	// The explicit event wins even with zero tonnage progress.
	st := ResolveStage(cfg, true, ev)
	if st.Status != models.StageStatusCompleted {
		t.Fatalf("expected completed from event, got %s", st.Status)
	}
	if st.EventDate == nil || !st.EventDate.Equal(when) {
		t.Fatalf("expected event date carried, got %v", st.EventDate)
	}
}

func TestResolveStage_DefaultEventRule(t *testing.T) {
	cfg := models.OperationStageConfig{StageCode: models.StageErectionStarted, StageName: "Erection Started"}
	when := date(2024, 3, 1)

	st := ResolveStage(cfg, true, StageEvidence{Production: productionWith(nil)})
	if st.Status != models.StageStatusNotStarted {
		t.Fatalf("no event expected not_started, got %s", st.Status)
	}

	st = ResolveStage(cfg, true, StageEvidence{
		Events:     []models.OperationEvent{{Stage: models.StageErectionStarted, EventDate: when, Status: "In Progress"}},
		Production: productionWith(nil),
	})
	if st.Status != models.StageStatusPending {
		t.Fatalf("non-completed event expected pending, got %s", st.Status)
	}

	st = ResolveStage(cfg, true, StageEvidence{
		Events:     []models.OperationEvent{{Stage: models.StageErectionStarted, EventDate: when, Status: "Completed"}},
		Production: productionWith(nil),
	})
	if st.Status != models.StageStatusCompleted {
		t.Fatalf("completed event expected completed, got %s", st.Status)
	}
	if st.StageName != "Erection" {
		t.Fatalf("display name expected Erection, got %q", st.StageName)
	}
}

func TestMatchingEvent_LatestDateWins(t *testing.T) {
	events := []models.OperationEvent{
		{ID: 1, Stage: models.StageErectionStarted, EventDate: date(2024, 3, 1), Status: "In Progress"},
		{ID: 2, Stage: models.StageErectionStarted, EventDate: date(2024, 3, 15), Status: "Completed"},
		{ID: 3, Stage: models.StageProductionStarted, EventDate: date(2024, 4, 1), Status: "Completed"},
	}

	got := matchingEvent(events, models.StageErectionStarted)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected event 2 (latest date), got %+v", got)
	}
	if matchingEvent(events, "NO_SUCH_STAGE") != nil {
		t.Fatalf("expected nil for unknown stage")
	}
}

func TestStageDisplayName(t *testing.T) {
	cases := []struct {
		cfg  models.OperationStageConfig
		want string
	}{
		{models.OperationStageConfig{StageCode: models.StageProductionStarted, StageName: "Production Started"}, "Production"},
		{models.OperationStageConfig{StageCode: models.StageCoatingStarted, StageName: "Coating Start"}, "Coating"},
		{models.OperationStageConfig{StageCode: models.StageDesignApproved, StageName: "Design Approved"}, "Design Approved"},
		// Blank catalog names fall back to a title-cased code.
		{models.OperationStageConfig{StageCode: "DISPATCHING_STARTED"}, "Dispatching"},
	}
	for _, tc := range cases {
		if got := StageDisplayName(tc.cfg); got != tc.want {
			t.Fatalf("StageDisplayName(%s) expected %q, got %q", tc.cfg.StageCode, tc.want, got)
		}
	}
}
