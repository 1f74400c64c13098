package phase

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestPhaseNormalization(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
	}{
		{"isotropic", NewIsotropic()},
		{"hg forward", NewHenyeyGreenstein(0.3)},
		{"hg backward", NewHenyeyGreenstein(-0.3)},
		{"hg nearly isotropic", NewHenyeyGreenstein(0.0001)},
	}

	wi := core.NewVec3(0.3, -0.4, 0.5).Normalize()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := core.NewSeededSampler(11)
			const n = 200000
			sum := 0.0
			for i := 0; i < n; i++ {
				wo := core.SampleOnUnitSphere(rng.Get2D())
				sum += tt.phase.PdfDirection(wi, wo) * 4 * math.Pi
			}
			if mean := sum / n; math.Abs(mean-1) > 0.02 {
				t.Errorf("pdf integrates to %f, expected 1", mean)
			}
		})
	}
}

func TestHenyeyGreensteinMeanCosine(t *testing.T) {
	for _, g := range []float64{-0.6, 0, 0.5} {
		p := NewHenyeyGreenstein(g)
		wi := core.NewVec3(0, 0, 1)
		rng := core.NewSeededSampler(12)
		const n = 100000
		sum := 0.0
		for i := 0; i < n; i++ {
			s, ok := p.SampleDirection(rng.Get2D(), wi)
			if !ok {
				t.Fatal("sampling failed")
			}
			if math.Abs(s.Wo.Length()-1) > 1e-9 {
				t.Fatalf("sampled direction not normalized: %v", s.Wo)
			}
			sum += -wi.Dot(s.Wo)
		}
		// The mean cosine of the scattering angle equals g
		if mean := sum / n; math.Abs(mean-g) > 0.01 {
			t.Errorf("g=%f: mean cosine %f", g, mean)
		}
	}
}

func TestPhaseWeightMatchesEvalOverPdf(t *testing.T) {
	p := NewHenyeyGreenstein(0.7)
	wi := core.NewVec3(1, 1, 0).Normalize()
	rng := core.NewSeededSampler(13)
	for i := 0; i < 100; i++ {
		s, _ := p.SampleDirection(rng.Get2D(), wi)
		ratio := p.Eval(wi, s.Wo).X / p.PdfDirection(wi, s.Wo)
		if math.Abs(ratio-s.Weight.X) > 1e-9 {
			t.Fatalf("weight %f, eval/pdf %f", s.Weight.X, ratio)
		}
	}
}
