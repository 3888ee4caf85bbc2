package bank

import (
	"math"
	"testing"
)

func TestBuild_FillsDomainDefaults(t *testing.T) {
	domains := []Domain{{Name: "mood"}, {Name: "energy"}}
	b, err := Build("test", "1.0.0", domains, twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, d := range b.Domains {
		if d.PriorVariance != 1.0 {
			t.Errorf("domain %q: prior variance default = %g, want 1", d.Name, d.PriorVariance)
		}
		if d.Weight != 1.0 {
			t.Errorf("domain %q: weight default = %g, want 1", d.Name, d.Weight)
		}
	}
}

func TestBuild_ConfigOverridesDomainFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinItemsByDomain = map[string]int{"mood": 3}
	cfg.DomainWeights = map[string]float64{"energy": 0.5}
	b, err := Build("test", "1.0.0", twoDomains(), twoItems(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if b.Domains[0].MinItems != 3 {
		t.Errorf("mood min items = %d, want 3 from config override", b.Domains[0].MinItems)
	}
	if b.Domains[1].Weight != 0.5 {
		t.Errorf("energy weight = %g, want 0.5 from config override", b.Domains[1].Weight)
	}
}

func TestBuild_DefaultPriorIsDiagonal(t *testing.T) {
	domains := []Domain{
		{Name: "mood", PriorVariance: 2.0},
		{Name: "energy", PriorVariance: 0.5},
	}
	b, err := Build("test", "1.0.0", domains, twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := [][]float64{{2.0, 0}, {0, 0.5}}
	for i := range want {
		for j := range want[i] {
			if b.Prior[i][j] != want[i][j] {
				t.Errorf("Prior[%d][%d] = %g, want %g", i, j, b.Prior[i][j], want[i][j])
			}
		}
	}
}

func TestBuild_DefaultGroupIsAllDomains(t *testing.T) {
	b, err := Build("test", "1.0.0", twoDomains(), twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(b.Config.PromisDomains) != 2 {
		t.Fatalf("ungrouped bank should place every domain in the primary group, got %v", b.Config.PromisDomains)
	}
	for _, name := range b.DomainNames() {
		if !InGroup(name, b.Config.PromisDomains) {
			t.Errorf("domain %q missing from default group", name)
		}
	}
}

func TestBank_ItemLookup(t *testing.T) {
	b, err := Build("test", "1.0.0", twoDomains(), twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	it, err := b.Item("m1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if it.Domain != "mood" {
		t.Errorf("item domain = %q, want mood", it.Domain)
	}
	if _, err := b.Item("nope"); err == nil {
		t.Error("expected error for unknown item ID")
	}
}

func TestBank_DomainIndexFollowsDeclarationOrder(t *testing.T) {
	b, err := Build("test", "1.0.0", twoDomains(), twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if idx, ok := b.DomainIndex("energy"); !ok || idx != 1 {
		t.Errorf("DomainIndex(energy) = %d, %v; want 1, true", idx, ok)
	}
	if _, ok := b.DomainIndex("void"); ok {
		t.Error("DomainIndex should report unknown domains")
	}
}

func TestBank_ScaleFor(t *testing.T) {
	items := twoItems()
	items[0].Choices = []string{"No", "Maybe", "Kind of", "Yes"}
	scale := []string{"Never", "Sometimes", "Always"}
	b, err := Build("test", "1.0.0", twoDomains(), items, DefaultConfig(), nil, scale)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	m1, _ := b.Item("m1")
	e1, _ := b.Item("e1")
	if got := b.ScaleFor(m1); len(got) != 4 || got[0] != "No" {
		t.Errorf("item with own choices should use them, got %v", got)
	}
	if got := b.ScaleFor(e1); len(got) != 3 || got[2] != "Always" {
		t.Errorf("item without choices should fall back to bank scale, got %v", got)
	}
}

func TestBank_ScaleForShortItem(t *testing.T) {
	items := twoItems()
	items[1].Thresholds = []float64{0.0} // two categories
	scale := []string{"Never", "Sometimes", "Often", "Always"}
	b, err := Build("test", "1.0.0", twoDomains(), items, DefaultConfig(), nil, scale)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	e1, _ := b.Item("e1")
	if got := b.ScaleFor(e1); len(got) != 2 || got[1] != "Sometimes" {
		t.Errorf("short item should use the scale's leading labels, got %v", got)
	}

	noScale, err := Build("test", "1.0.0", twoDomains(), twoItems(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	m1, _ := noScale.Item("m1")
	if got := noScale.ScaleFor(m1); len(got) != 4 || got[0] != "0" {
		t.Errorf("bank without scale should number the categories, got %v", got)
	}
}

func TestBuiltin_Valid(t *testing.T) {
	b, cons := Builtin()
	if b == nil {
		t.Fatal("builtin bank is nil")
	}
	if len(b.Domains) != 5 {
		t.Errorf("builtin bank has %d domains, want 5", len(b.Domains))
	}
	if len(b.Items) != 26 {
		t.Errorf("builtin bank has %d items, want 26", len(b.Items))
	}
	if cons.Len() != 2 {
		t.Errorf("builtin bank has %d exclusion pairs, want 2", cons.Len())
	}
	for _, it := range b.Items {
		if it.Categories != 5 {
			t.Errorf("item %q has %d categories, want 5", it.ID, it.Categories)
		}
	}
}

func TestBuiltin_PriorIsFinitePositiveDefinite(t *testing.T) {
	b, _ := Builtin()
	for i, row := range b.Prior {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Prior[%d][%d] not finite: %g", i, j, v)
			}
		}
	}
	// Cholesky factorization succeeds exactly when the matrix is
	// positive definite.
	n := len(b.Prior)
	chol := make([][]float64, n)
	for i := range chol {
		chol[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := b.Prior[i][j]
			for k := 0; k < j; k++ {
				sum -= chol[i][k] * chol[j][k]
			}
			if i == j {
				if sum <= 0 {
					t.Fatalf("prior not positive definite: pivot %d is %g", i, sum)
				}
				chol[i][i] = math.Sqrt(sum)
			} else {
				chol[i][j] = sum / chol[j][j]
			}
		}
	}
}

func TestConstraints_PartnersSymmetricAndDeduped(t *testing.T) {
	cons := NewConstraints([][2]string{
		{"a", "b"},
		{"b", "a"}, // mirror of the first
		{"a", "c"},
	})
	if cons.Len() != 2 {
		t.Fatalf("mirrored pair should be deduped: got %d pairs", cons.Len())
	}
	if got := cons.Partners("a"); len(got) != 2 {
		t.Errorf("Partners(a) = %v, want b and c", got)
	}
	if !cons.Forbidden("b", "a") {
		t.Error("Forbidden should be symmetric")
	}
	if cons.Forbidden("b", "c") {
		t.Error("unrelated items should not be forbidden")
	}
}

func TestConstraints_NilSafe(t *testing.T) {
	var cons *Constraints
	if cons.Forbidden("a", "b") {
		t.Error("nil constraints should forbid nothing")
	}
	if got := cons.Partners("a"); got != nil {
		t.Errorf("nil constraints Partners = %v, want nil", got)
	}
	if cons.Len() != 0 {
		t.Errorf("nil constraints Len = %d, want 0", cons.Len())
	}
}
