package sim

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/checkin/internal/bank"
)

func simBank(t *testing.T) (*bank.Bank, *bank.Constraints) {
	t.Helper()
	domains := []bank.Domain{
		{Name: "mood", PriorVariance: 1.0, MinItems: 1},
		{Name: "energy", PriorVariance: 1.0, MinItems: 1},
	}
	items := []bank.Item{
		{ID: "m1", Domain: "mood", Stem: "m1", Discrimination: 2.2, Thresholds: []float64{-1.5, -0.5, 0.5, 1.5}},
		{ID: "m2", Domain: "mood", Stem: "m2", Discrimination: 2.0, Thresholds: []float64{-1.2, -0.2, 0.8, 1.8}},
		{ID: "m3", Domain: "mood", Stem: "m3", Discrimination: 1.8, Thresholds: []float64{-0.8, 0.2, 1.2, 2.0}},
		{ID: "e1", Domain: "energy", Stem: "e1", Discrimination: 2.1, Thresholds: []float64{-1.4, -0.4, 0.6, 1.6}},
		{ID: "e2", Domain: "energy", Stem: "e2", Discrimination: 1.9, Thresholds: []float64{-1.0, 0.0, 1.0, 1.9}},
		{ID: "e3", Domain: "energy", Stem: "e3", Discrimination: 2.4, Thresholds: []float64{-0.6, 0.4, 1.3, 2.1}, Reversed: true},
	}
	cfg := bank.Config{
		MinItems:          3,
		MaxItems:          6,
		GlobalSEThreshold: 0.45,
		StopOnExhaustion:  true,
	}
	prior := [][]float64{{1.0, 0.4}, {0.4, 1.0}}
	b, err := bank.Build("sim", "1.0.0", domains, items, cfg, prior, nil)
	if err != nil {
		t.Fatalf("bank build failed: %v", err)
	}
	return b, nil
}

func TestRun_DeterministicForSeed(t *testing.T) {
	b, cons := simBank(t)
	cfg := Config{Replications: 10, Seed: 99}

	first, err := Run(b, cons, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := Run(b, cons, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if first.MeanItems != second.MeanItems {
		t.Errorf("mean items differ across identical runs: %g vs %g", first.MeanItems, second.MeanItems)
	}
	for d := range first.Domains {
		if first.Domains[d].Bias != second.Domains[d].Bias {
			t.Errorf("domain %d bias differs: %g vs %g", d, first.Domains[d].Bias, second.Domains[d].Bias)
		}
		if first.Domains[d].RMSE != second.Domains[d].RMSE {
			t.Errorf("domain %d rmse differs: %g vs %g", d, first.Domains[d].RMSE, second.Domains[d].RMSE)
		}
	}
	for reason, count := range first.StopReasons {
		if second.StopReasons[reason] != count {
			t.Errorf("stop reason %q count differs: %d vs %d", reason, count, second.StopReasons[reason])
		}
	}
}

func TestRun_StopReasonsAccountForAllReplications(t *testing.T) {
	b, cons := simBank(t)
	sum, err := Run(b, cons, Config{Replications: 25, Seed: 7})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	total := 0
	for _, c := range sum.StopReasons {
		total += c
	}
	if total != 25 {
		t.Errorf("stop reasons account for %d of 25 replications", total)
	}
	if sum.MeanItems < 3 || sum.MeanItems > 6 {
		t.Errorf("mean items %g outside configured [3, 6]", sum.MeanItems)
	}
}

func TestRun_RecoversFixedTruth(t *testing.T) {
	b, cons := simBank(t)
	cfg := Config{
		Replications: 40,
		Seed:         123,
		TrueTheta:    []float64{1.0, -1.0},
	}
	sum, err := Run(b, cons, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Short adaptive forms shrink toward the prior mean, so expect
	// attenuation but not gross error or sign flips.
	if math.Abs(sum.Domains[0].Bias) > 0.8 {
		t.Errorf("mood bias %g too large for truth +1", sum.Domains[0].Bias)
	}
	if math.Abs(sum.Domains[1].Bias) > 0.8 {
		t.Errorf("energy bias %g too large for truth -1", sum.Domains[1].Bias)
	}
	for _, ds := range sum.Domains {
		if ds.RMSE <= 0 || ds.RMSE > 1.5 {
			t.Errorf("%s: rmse %g outside plausible range", ds.Domain, ds.RMSE)
		}
		if ds.MeanSE <= 0 || ds.MeanSE >= 1 {
			t.Errorf("%s: mean SE %g should sit inside (0, 1) after answering", ds.Domain, ds.MeanSE)
		}
		if ds.MeanPrecision <= 1 {
			t.Errorf("%s: mean posterior precision %g should exceed the prior's", ds.Domain, ds.MeanPrecision)
		}
	}
}

func TestRun_RejectsBadConfig(t *testing.T) {
	b, cons := simBank(t)
	if _, err := Run(b, cons, Config{Replications: 0, Seed: 1}); err == nil {
		t.Error("expected error for zero replications")
	}
	if _, err := Run(b, cons, Config{Replications: 5, Seed: 1, TrueTheta: []float64{1}}); err == nil {
		t.Error("expected error for truth vector length mismatch")
	}
}

func TestSampleResponse_TracksTruth(t *testing.T) {
	b, _ := simBank(t)
	it, err := b.Item("m1")
	if err != nil {
		t.Fatal(err)
	}
	// At truth far below every threshold, the bottom category dominates.
	low := drawMany(t, it, -3.5)
	if low > 1.0 {
		t.Errorf("mean sampled category %g too high for truth -3.5", low)
	}
	high := drawMany(t, it, 3.5)
	if high < 3.0 {
		t.Errorf("mean sampled category %g too low for truth +3.5", high)
	}
}

func TestSampleResponse_ReversedRoundTrips(t *testing.T) {
	b, cons := simBank(t)
	// e3 is reversed; a strongly elevated respondent must still be
	// estimated as elevated after display-order mapping.
	sum, err := Run(b, cons, Config{Replications: 30, Seed: 5, TrueTheta: []float64{2.0, 2.0}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if sum.Domains[1].Bias < -1.5 {
		t.Errorf("energy estimates collapsed (bias %g); reversed mapping likely broken", sum.Domains[1].Bias)
	}
}

func drawMany(t *testing.T, it *bank.Item, truth float64) float64 {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	sum := 0
	const n = 400
	for i := 0; i < n; i++ {
		sum += sampleResponse(rng, it, truth)
	}
	return float64(sum) / n
}
