package rollup

import (
	"github.com/refedo/OTS-sub004/models"
)

// newProcessMap returns a tonnage map with one zeroed entry per tracked
// process type, so every bucket exists even when no part has a log for it.
func newProcessMap() map[string]models.ProcessProgress {
	m := make(map[string]models.ProcessProgress, len(models.ProcessTypes))
	for _, pt := range models.ProcessTypes {
		m[pt] = models.ProcessProgress{}
	}
	return m
}

// AggregateProduction fuses a building's assembly parts and their production
// logs into the per-process-type tonnage map plus the overall completion
// numbers. Parts with no logs carry no production signal: they are skipped
// from every tonnage bucket, including the building total.
//
// Per process type the completed credit for a part is all-or-ratio: any log
// with remaining_qty == 0 marks the part fully processed for that type,
// otherwise the latest log of that type gives fractional credit
// processed_qty/quantity. The total tonnage of every process bucket is the
// building's total logged tonnage.
func AggregateProduction(buildingID int, parts []models.AssemblyPart) models.BuildingProduction {
	prod := models.BuildingProduction{
		BuildingID: buildingID,
		ByProcess:  newProcessMap(),
	}

	for _, part := range parts {
		prod.TotalParts++
		if len(part.Logs) == 0 {
			continue
		}

		tonnage := part.TonnageTotal()
		qty := float64(part.EffectiveQuantity())
		prod.TotalTonnage += tonnage

		// Per-process state for this part: fully processed beats any ratio,
		// otherwise the latest log of that process type is authoritative.
		fullyDone := make(map[string]bool)
		latest := make(map[string]models.ProductionLog)
		for _, lg := range part.Logs {
			if !models.IsValidProcessType(lg.ProcessType) {
				continue
			}
			if lg.RemainingQty == 0 {
				fullyDone[lg.ProcessType] = true
			}
			latest[lg.ProcessType] = lg
		}

		for pt, lg := range latest {
			pp := prod.ByProcess[pt]
			if fullyDone[pt] {
				pp.Completed += tonnage
			} else {
				pp.Completed += tonnage * float64(lg.ProcessedQty) / qty
			}
			prod.ByProcess[pt] = pp
		}

		// Overall building completion uses the chronologically last log for
		// the part, regardless of process type.
		last := part.Logs[len(part.Logs)-1]
		if last.RemainingQty == 0 {
			prod.CompletedTonnage += tonnage
			prod.CompletedParts++
		} else {
			prod.CompletedTonnage += tonnage * float64(last.ProcessedQty) / qty
		}
	}

	// Every process bucket shares the building's total logged tonnage as
	// its denominator.
	for pt, pp := range prod.ByProcess {
		pp.Total = prod.TotalTonnage
		prod.ByProcess[pt] = pp
	}

	return prod
}
