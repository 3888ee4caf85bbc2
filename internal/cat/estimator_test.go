package cat

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/checkin/internal/bank"
)

func oneItemBank(t *testing.T, a float64, thresholds []float64, reversed bool) *bank.Bank {
	t.Helper()
	b, err := bank.Build("test", "1.0.0",
		[]bank.Domain{{Name: "mood", PriorVariance: 1.0}},
		[]bank.Item{{ID: "m1", Domain: "mood", Stem: "q", Discrimination: a, Thresholds: thresholds, Reversed: reversed}},
		bank.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("bank build failed: %v", err)
	}
	return b
}

func respond(id string, category int) Response {
	return Response{ItemID: id, Domain: "mood", Response: category, At: time.Unix(0, 0)}
}

func TestEstimateMAP_LowestCategoryPullsBelowZero(t *testing.T) {
	b := oneItemBank(t, 1.0, []float64{0}, false)
	theta := []float64{0}
	estimateMAP(b, []Response{respond("m1", 0)}, theta)
	if !(theta[0] < 0) {
		t.Errorf("lowest category should pull theta below 0, got %g", theta[0])
	}
}

func TestEstimateMAP_HighestCategoryPullsAboveZero(t *testing.T) {
	b := oneItemBank(t, 1.0, []float64{0}, false)
	theta := []float64{0}
	estimateMAP(b, []Response{respond("m1", 1)}, theta)
	if !(theta[0] > 0) {
		t.Errorf("highest category should pull theta above 0, got %g", theta[0])
	}
}

func TestEstimateMAP_ReversedItemFlipsDirection(t *testing.T) {
	plain := oneItemBank(t, 1.0, []float64{0}, false)
	reversed := oneItemBank(t, 1.0, []float64{0}, true)

	thetaPlain := []float64{0}
	estimateMAP(plain, []Response{respond("m1", 1)}, thetaPlain)

	thetaRev := []float64{0}
	estimateMAP(reversed, []Response{respond("m1", 1)}, thetaRev)

	if !(thetaPlain[0] > 0) {
		t.Fatalf("plain top category should raise theta, got %g", thetaPlain[0])
	}
	if !(thetaRev[0] < 0) {
		t.Errorf("reversed top category should lower theta, got %g", thetaRev[0])
	}
	if !almostEqual(thetaRev[0], -thetaPlain[0]) {
		t.Errorf("symmetric item should reflect exactly: %g vs %g", thetaRev[0], thetaPlain[0])
	}
}

func TestEstimateMAP_OutOfRangeResponseClamped(t *testing.T) {
	b := oneItemBank(t, 1.0, []float64{0}, false)

	extreme := []float64{0}
	estimateMAP(b, []Response{respond("m1", 1)}, extreme)

	overflowed := []float64{0}
	estimateMAP(b, []Response{respond("m1", 99)}, overflowed)

	if !almostEqual(extreme[0], overflowed[0]) {
		t.Errorf("out-of-range response should score as the top category: %g vs %g", overflowed[0], extreme[0])
	}
}

func TestEstimateMAP_MoreEvidenceMovesFurther(t *testing.T) {
	b, err := bank.Build("test", "1.0.0",
		[]bank.Domain{{Name: "mood", PriorVariance: 1.0}},
		[]bank.Item{
			{ID: "m1", Domain: "mood", Stem: "q1", Discrimination: 1.5, Thresholds: []float64{-1, 0, 1}},
			{ID: "m2", Domain: "mood", Stem: "q2", Discrimination: 1.5, Thresholds: []float64{-1, 0, 1}},
		},
		bank.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("bank build failed: %v", err)
	}

	one := []float64{0}
	estimateMAP(b, []Response{respond("m1", 3)}, one)

	two := []float64{0}
	estimateMAP(b, []Response{respond("m1", 3), respond("m2", 3)}, two)

	if !(two[0] > one[0]) {
		t.Errorf("a second concurring top response should move theta further: %g vs %g", two[0], one[0])
	}
}

func TestEstimateMAP_ThetaStaysBounded(t *testing.T) {
	b, err := bank.Build("test", "1.0.0",
		[]bank.Domain{{Name: "mood", PriorVariance: 1.0}},
		[]bank.Item{
			{ID: "m1", Domain: "mood", Stem: "q1", Discrimination: 4.0, Thresholds: []float64{-3}},
			{ID: "m2", Domain: "mood", Stem: "q2", Discrimination: 4.0, Thresholds: []float64{-3}},
			{ID: "m3", Domain: "mood", Stem: "q3", Discrimination: 4.0, Thresholds: []float64{-3}},
		},
		bank.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("bank build failed: %v", err)
	}
	theta := []float64{0}
	estimateMAP(b, []Response{respond("m1", 1), respond("m2", 1), respond("m3", 1)}, theta)
	if theta[0] > thetaBound || theta[0] < -thetaBound {
		t.Errorf("theta %g escaped [-4, 4]", theta[0])
	}
	if math.IsNaN(theta[0]) || math.IsInf(theta[0], 0) {
		t.Errorf("theta not finite: %g", theta[0])
	}
}

func TestEstimateMAP_NoResponsesLeavesPriorMean(t *testing.T) {
	b := oneItemBank(t, 1.0, []float64{0}, false)
	theta := []float64{0}
	estimateMAP(b, nil, theta)
	if !almostEqual(theta[0], 0) {
		t.Errorf("no evidence should leave theta at the prior mean, got %g", theta[0])
	}
}

func TestEstimateMAP_UntouchedDomainStaysPut(t *testing.T) {
	b, err := bank.Build("test", "1.0.0",
		[]bank.Domain{{Name: "mood", PriorVariance: 1.0}, {Name: "energy", PriorVariance: 1.0}},
		[]bank.Item{
			{ID: "m1", Domain: "mood", Stem: "q1", Discrimination: 2.0, Thresholds: []float64{0}},
			{ID: "e1", Domain: "energy", Stem: "q2", Discrimination: 2.0, Thresholds: []float64{0}},
		},
		bank.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("bank build failed: %v", err)
	}
	theta := []float64{0, 0}
	estimateMAP(b, []Response{respond("m1", 1)}, theta)
	if !(theta[0] > 0) {
		t.Errorf("answered domain should move, got %g", theta[0])
	}
	if !almostEqual(theta[1], 0) {
		t.Errorf("decoupled estimation must not move an unanswered domain, got %g", theta[1])
	}
}

func TestScoredCategory(t *testing.T) {
	plain := &bank.Item{Categories: 5}
	reversed := &bank.Item{Categories: 5, Reversed: true}

	tests := []struct {
		item *bank.Item
		raw  int
		want int
	}{
		{plain, 0, 0},
		{plain, 4, 4},
		{plain, -3, 0},
		{plain, 9, 4},
		{reversed, 0, 4},
		{reversed, 4, 0},
		{reversed, 9, 0}, // clamp to 4, then reflect
		{reversed, -1, 4},
		{reversed, 2, 2},
	}
	for _, tt := range tests {
		if got := scoredCategory(tt.item, tt.raw); got != tt.want {
			t.Errorf("scoredCategory(reversed=%v, %d) = %d, want %d", tt.item.Reversed, tt.raw, got, tt.want)
		}
	}
}
