package dataprep_test

import (
	"reflect"
	"testing"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
)

func TestLabelEncoder(t *testing.T) {
	le := dataprep.NewLabelEncoder([]string{"Sleep Apnea", "None", "Insomnia", "None"})

	if want := []string{"Insomnia", "None", "Sleep Apnea"}; !reflect.DeepEqual(le.Classes, want) {
		t.Errorf("classes = %v, want %v", le.Classes, want)
	}

	codes, err := le.Encode([]string{"None", "Sleep Apnea", "Insomnia"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 0}; !reflect.DeepEqual(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}

	for _, code := range codes {
		name, err := le.Decode(code)
		if err != nil {
			t.Fatal(err)
		}
		if back, _ := le.Encode([]string{name}); back[0] != code {
			t.Errorf("decode/encode of %d gives %d", code, back[0])
		}
	}

	t.Run("unknown class is rejected", func(t *testing.T) {
		if _, err := le.Encode([]string{"Narcolepsy"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("out of range code is rejected", func(t *testing.T) {
		if _, err := le.Decode(3); err == nil {
			t.Error("expected error")
		}
		if _, err := le.Decode(-1); err == nil {
			t.Error("expected error")
		}
	})
}

func TestOneHotEncoder(t *testing.T) {
	e := dataprep.NewOneHotEncoder()
	e.Fit([][]string{
		{"Male", "Female", "Male"},
		{"Normal", "Obese", "Overweight"},
	})
	if e.Width() != 5 {
		t.Fatalf("width = %d, want 5", e.Width())
	}

	for name, testcase := range map[string]struct {
		when []string
		then []float64
	}{
		"known categories": {
			when: []string{"Male", "Obese"},
			then: []float64{0, 1, 0, 1, 0},
		},
		"unknown category encodes to zeros": {
			when: []string{"Other", "Normal"},
			then: []float64{0, 0, 1, 0, 0},
		},
	} {
		t.Run(name, func(t *testing.T) {
			dst := []float64{9, 9, 9, 9, 9}
			e.TransformRow(testcase.when, dst)
			if !reflect.DeepEqual(dst, testcase.then) {
				t.Errorf("row = %v, want %v", dst, testcase.then)
			}
		})
	}
}
