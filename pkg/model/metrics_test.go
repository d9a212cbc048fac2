package model_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
)

func TestAccuracy(t *testing.T) {
	if got := model.Accuracy([]int{0, 1, 1, 2}, []int{0, 1, 2, 2}); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}
	if got := model.Accuracy(nil, nil); got != 0 {
		t.Errorf("accuracy of nothing = %v, want 0", got)
	}
}

func TestConfusionAndWeightedF1(t *testing.T) {
	actual := []string{"None", "None", "Insomnia", "Sleep Apnea"}
	pred := []string{"None", "Insomnia", "Insomnia", "None"}
	cm := model.ConfusionMatrix(actual, pred)

	labels := model.Labels(cm)
	if want := []string{"Insomnia", "None", "Sleep Apnea"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	counts := model.Counts(cm, labels)
	want := [][]int{
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}

	// Insomnia: p=1/2 r=1 f1=2/3, support 1
	// None: p=1/2 r=1/2 f1=1/2, support 2
	// Sleep Apnea: never predicted, f1=0, support 1
	f1 := model.WeightedF1(cm)
	if wantF1 := (2.0/3 + 2*0.5) / 4; math.Abs(f1-wantF1) > 1e-12 {
		t.Errorf("weighted f1 = %v, want %v", f1, wantF1)
	}
}

func TestWeightedF1IsStable(t *testing.T) {
	actual := []string{"None", "None", "Insomnia", "Sleep Apnea", "Insomnia", "None", "Sleep Apnea"}
	pred := []string{"None", "Insomnia", "Insomnia", "None", "Sleep Apnea", "None", "Sleep Apnea"}
	cm := model.ConfusionMatrix(actual, pred)
	first := model.WeightedF1(cm)
	for range 50 {
		if got := model.WeightedF1(cm); math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("weighted f1 = %v, earlier %v", got, first)
		}
	}
}
