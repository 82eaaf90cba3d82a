package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunStats accumulates per-tick ship records and summarizes the run.
type RunStats struct {
	generationWh  []float64
	consumptionWh []float64
	storagePer    []float64

	generatingTicks int
	chasingTicks    int
	ticks           int

	last ShipRecord
}

// Add folds one ship record into the accumulator.
func (rs *RunStats) Add(rec ShipRecord) {
	rs.generationWh = append(rs.generationWh, rec.TimestepGenerationWh)
	rs.consumptionWh = append(rs.consumptionWh, rec.TimestepConsumptionWh)
	rs.storagePer = append(rs.storagePer, rec.StoragePer)
	switch rec.Status {
	case 1:
		rs.generatingTicks++
	case 2:
		rs.chasingTicks++
	}
	rs.ticks++
	rs.last = rec
}

// Summary holds aggregate statistics for a whole run.
type Summary struct {
	Ticks              int
	GeneratingFraction float64
	ChasingFraction    float64

	GenerationMeanWh float64
	GenerationStdWh  float64
	StoragePerP10    float64
	StoragePerP50    float64
	StoragePerP90    float64

	// Fraction of the rated output actually generated over the run.
	CapacityFactor float64

	TotalGenerationWh  float64
	TotalConsumptionWh float64
	TotalSupplyWh      float64
}

// Summarize computes the run summary. ratedW is the ship's rated output
// and hours the simulated span.
func (rs *RunStats) Summarize(ratedW, hours float64) Summary {
	s := Summary{Ticks: rs.ticks}
	if rs.ticks == 0 {
		return s
	}

	s.GeneratingFraction = float64(rs.generatingTicks) / float64(rs.ticks)
	s.ChasingFraction = float64(rs.chasingTicks) / float64(rs.ticks)

	s.GenerationMeanWh = stat.Mean(rs.generationWh, nil)
	s.GenerationStdWh = stat.StdDev(rs.generationWh, nil)

	per := append([]float64(nil), rs.storagePer...)
	sort.Float64s(per)
	s.StoragePerP10 = stat.Quantile(0.10, stat.Empirical, per, nil)
	s.StoragePerP50 = stat.Quantile(0.50, stat.Empirical, per, nil)
	s.StoragePerP90 = stat.Quantile(0.90, stat.Empirical, per, nil)

	if ratedW > 0 && hours > 0 {
		s.CapacityFactor = rs.last.TotalGenerationWh / (ratedW * hours)
	}
	s.TotalGenerationWh = rs.last.TotalGenerationWh
	s.TotalConsumptionWh = rs.last.TotalConsumptionWh
	s.TotalSupplyWh = rs.last.TotalSupplyWh
	return s
}

// Log emits the summary through slog.
func (s Summary) Log() {
	slog.Info("run summary",
		"ticks", s.Ticks,
		"generating_fraction", s.GeneratingFraction,
		"chasing_fraction", s.ChasingFraction,
		"generation_mean_wh", s.GenerationMeanWh,
		"capacity_factor", s.CapacityFactor,
		"total_generation_wh", s.TotalGenerationWh,
		"total_supply_wh", s.TotalSupplyWh,
	)
}
