package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/daryltucker/ei-reports/internal/model"
)

// SampleSheet is the sheet name used by WriteSample.
const SampleSheet = "EI Assessment"

// SampleComponents are the EI component columns written by WriteSample.
var SampleComponents = []string{
	"Self-Awareness (%)",
	"Self-Regulation (%)",
	"Motivation (%)",
	"Empathy (%)",
	"Social Skills (%)",
}

var sampleNames = []string{
	"Aisha Khan", "Ben Carter", "Chloe Martin", "Daniel Osei", "Elena Rossi",
	"Farid Haddad", "Grace Liu", "Hugo Silva", "Ines Duarte", "Jonas Berg",
	"Kemi Adeyemi", "Liam Walsh", "Maya Patel", "Noah Fischer", "Olivia Brown",
	"Pedro Alves", "Quinn Murphy", "Rosa Jimenez", "Samir Nasser", "Tara Singh",
}

// SampleHeader returns the header row written by WriteSample.
func SampleHeader() []string {
	h := []string{model.ColName, model.ColVintage, model.ColEIScore, model.ColPerformance, model.ColEmotionalRegulation}
	h = append(h, SampleComponents...)
	return append(h, model.ColStress, model.ColCalmness, model.ColMood)
}

// WriteSample writes n synthetic assessment records to path. The same seed
// always produces the same workbook contents.
func WriteSample(path string, n int, seed int64) error {
	if n < 1 {
		return fmt.Errorf("sample size must be positive, got %d", n)
	}
	rng := rand.New(rand.NewSource(seed))

	rows := make([][]interface{}, 0, n+1)
	rows = append(rows, toCells(SampleHeader()))
	for i := 0; i < n; i++ {
		rows = append(rows, sampleRow(rng, i))
	}
	return WriteWorkbook(path, SampleSheet, rows)
}

func sampleRow(rng *rand.Rand, i int) []interface{} {
	name := sampleNames[i%len(sampleNames)]
	if i >= len(sampleNames) {
		name = fmt.Sprintf("%s %d", name, i/len(sampleNames)+1)
	}

	comps := make([]float64, len(SampleComponents))
	var sum float64
	for j := range comps {
		comps[j] = clampPct(rng.NormFloat64()*12 + 70)
		sum += comps[j]
	}
	ei := round1(sum / float64(len(comps)))
	calm := clampPct(rng.NormFloat64()*15 + 65)
	stress := clampPct(100 - calm + rng.NormFloat64()*8)
	mood := clampPct(rng.NormFloat64()*10 + 68)
	regulation := round1((comps[1] + calm) / 2)
	perf := round1(math.Min(100, math.Max(0, ei*0.6+rng.NormFloat64()*6+28)))

	row := []interface{}{name, 2021 + i%4, ei, perf, regulation}
	for _, c := range comps {
		row = append(row, c)
	}
	return append(row, stress, calm, mood)
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func clampPct(v float64) float64 {
	return round1(math.Min(100, math.Max(0, v)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
