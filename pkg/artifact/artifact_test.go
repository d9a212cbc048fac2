package artifact_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/artifact"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/pipeline"
)

func sample() *dataprep.Table {
	return dataprep.NewTable(
		dataprep.Numbers("sleep_duration", 8, 7.5, 5.9, 6.1, 6.0, 8.1),
		dataprep.Categories("bmi_category", "Normal", "Normal", "Overweight", "Obese", "Overweight", "Normal"),
	)
}

func fitted(t *testing.T, spec model.Spec) (*pipeline.Pipeline, *dataprep.LabelEncoder) {
	t.Helper()
	labels := []string{"None", "None", "Insomnia", "Sleep Apnea", "Insomnia", "None"}
	le := dataprep.NewLabelEncoder(labels)
	y, err := le.Encode(labels)
	if err != nil {
		t.Fatal(err)
	}
	clf, err := model.Build(spec, 42)
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.Assemble([]string{"bmi_category"}, []string{"sleep_duration"}, clf)
	if err := p.Fit(sample(), y); err != nil {
		t.Fatal(err)
	}
	return p, le
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, spec := range map[string]model.Spec{
		"logistic": model.LogisticSpec{C: 1},
		"svm":      model.SVCSpec{C: 1, Kernel: model.RBF},
		"forest":   model.ForestSpec{NEstimators: 5, MaxDepth: 4},
	} {
		t.Run(name, func(t *testing.T) {
			p, le := fitted(t, spec)
			dir := filepath.Join(t.TempDir(), "model")
			meta := &artifact.Metadata{
				RunID:     "run-1",
				CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				ModelType: spec.Name(),
				Classes:   le.Classes,
				Accuracy:  0.5,
			}

			paths, err := artifact.Save(dir, p, le, meta)
			if err != nil {
				t.Fatal(err)
			}
			for _, f := range []string{paths.Model, paths.Encoder, paths.Metadata} {
				if _, err := os.Stat(f); err != nil {
					t.Errorf("artifact %s: %v", f, err)
				}
			}

			b, err := artifact.Load(dir)
			if err != nil {
				t.Fatal(err)
			}
			want, err := p.Predict(sample())
			if err != nil {
				t.Fatal(err)
			}
			got, err := b.Predict(sample())
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("loaded pipeline predicts %v, want %v", got, want)
			}
			if name, err := b.Decode(0); err != nil || name != "Insomnia" {
				t.Errorf("Decode(0) = %q, %v, want Insomnia", name, err)
			}
			switch {
			case b.Meta == nil:
				t.Error("run metadata not loaded")
			case b.Meta.RunID != meta.RunID || b.Meta.ModelType != meta.ModelType || b.Meta.Accuracy != meta.Accuracy:
				t.Errorf("metadata = %+v, want %+v", b.Meta, meta)
			case !b.Meta.CreatedAt.Equal(meta.CreatedAt):
				t.Errorf("created_at = %v, want %v", b.Meta.CreatedAt, meta.CreatedAt)
			case !reflect.DeepEqual(b.Meta.Classes, le.Classes):
				t.Errorf("classes = %v, want %v", b.Meta.Classes, le.Classes)
			}
		})
	}
}

func TestSaveErrors(t *testing.T) {
	p, le := fitted(t, model.ForestSpec{NEstimators: 2, MaxDepth: 2})

	missingParent := filepath.Join(t.TempDir(), "absent", "model")
	if _, err := artifact.Save(missingParent, p, le, nil); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("missing parent error = %v, want ErrNotFound", err)
	}

	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := artifact.Save(file, p, le, nil); !errors.Is(err, xerrors.ErrWrite) {
		t.Errorf("dir is a file error = %v, want ErrWrite", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := artifact.Load(dir); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("empty dir error = %v, want ErrNotFound", err)
	}

	if err := os.WriteFile(filepath.Join(dir, artifact.ModelFile), []byte("not gob"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := artifact.Load(dir); !errors.Is(err, xerrors.ErrRead) {
		t.Errorf("corrupt model error = %v, want ErrRead", err)
	}
}

func TestSaveLeavesNoHalfPair(t *testing.T) {
	p, le := fitted(t, model.LogisticSpec{C: 1})
	dir := filepath.Join(t.TempDir(), "model")
	if err := os.MkdirAll(filepath.Join(dir, artifact.EncoderFile), 0o755); err != nil {
		t.Fatal(err)
	}

	meta := &artifact.Metadata{RunID: "run-2"}
	if _, err := artifact.Save(dir, p, le, meta); !errors.Is(err, xerrors.ErrWrite) {
		t.Fatalf("encoder path is a directory error = %v, want ErrWrite", err)
	}
	if _, err := os.Stat(filepath.Join(dir, artifact.ModelFile)); !os.IsNotExist(err) {
		t.Errorf("model written without its encoder: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != artifact.EncoderFile {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("model dir holds %v, want only the pre-existing %s", names, artifact.EncoderFile)
	}
}
