package artifact

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	xerrors "github.com/vinnie071015/sleeping-disorder-mlops/pkg/errors"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/pipeline"
)

// Bundle is a loaded model directory.
type Bundle struct {
	Pipeline *pipeline.Pipeline
	Encoder  *dataprep.LabelEncoder
	// Meta is nil when the directory has no run.yaml.
	Meta *Metadata
}

// Load reads the artifacts Save wrote into dir.
func Load(dir string) (*Bundle, error) {
	const op = "load artifacts"
	b := &Bundle{}
	if err := decodeFile(op, filepath.Join(dir, ModelFile), &b.Pipeline); err != nil {
		return nil, err
	}
	if err := decodeFile(op, filepath.Join(dir, EncoderFile), &b.Encoder); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, MetadataFile)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, xerrors.Read(op, path, err)
	default:
		b.Meta = &Metadata{}
		if err := yaml.Unmarshal(raw, b.Meta); err != nil {
			return nil, xerrors.Read(op, path, err)
		}
	}
	return b, nil
}

func decodeFile(op, path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return xerrors.NotFound(op, path, err)
		}
		return xerrors.Read(op, path, err)
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return xerrors.Read(op, path, err)
	}
	return nil
}

// Predict returns one class code per row of t.
func (b *Bundle) Predict(t *dataprep.Table) ([]int, error) {
	return b.Pipeline.Predict(t)
}

// Decode maps a class code back to its class name.
func (b *Bundle) Decode(code int) (string, error) {
	return b.Encoder.Decode(code)
}

// PredictLabels predicts t and decodes every code.
func (b *Bundle) PredictLabels(t *dataprep.Table) ([]string, error) {
	codes, err := b.Predict(t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		if out[i], err = b.Decode(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}
