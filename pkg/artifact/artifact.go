// Package artifact persists a trained pipeline and its label encoder, and
// loads them back for inference.
//
// A model directory holds:
//
//	model.gob          the fitted pipeline
//	label_encoder.gob  the class name <-> code mapping
//	run.yaml           run metadata
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
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/pipeline"
)

const (
	ModelFile    = "model.gob"
	EncoderFile  = "label_encoder.gob"
	MetadataFile = "run.yaml"
)

func init() {
	gob.Register(&model.LogisticRegression{})
	gob.Register(&model.SVC{})
	gob.Register(&model.RandomForest{})
	gob.Register(&model.DecisionTreeClassifier{})
}

// Paths are the files written by Save.
type Paths struct {
	Model    string
	Encoder  string
	Metadata string
}

// Save writes the pipeline, the encoder and meta into dir, creating dir if
// needed. The parent of dir must exist.
//
// Both artifacts are encoded before anything touches the disk. Every file is
// first written under a temporary name; the files are renamed into place only
// once all of them are written. If a rename fails, the files already renamed
// are removed, so a failed Save never leaves a model without its encoder.
func Save(dir string, p *pipeline.Pipeline, le *dataprep.LabelEncoder, meta *Metadata) (Paths, error) {
	const op = "save artifacts"
	if p == nil || le == nil {
		return Paths{}, xerrors.Write(op, dir, errors.New("nothing to save"))
	}

	parent := filepath.Dir(filepath.Clean(dir))
	if _, err := os.Stat(parent); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Paths{}, xerrors.NotFound(op, parent, err)
		}
		return Paths{}, xerrors.Write(op, parent, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, xerrors.Write(op, dir, err)
	}

	modelBytes, err := encode(p)
	if err != nil {
		return Paths{}, xerrors.Write(op, ModelFile, err)
	}
	encBytes, err := encode(le)
	if err != nil {
		return Paths{}, xerrors.Write(op, EncoderFile, err)
	}

	paths := Paths{
		Model:   filepath.Join(dir, ModelFile),
		Encoder: filepath.Join(dir, EncoderFile),
	}
	files := []stagedFile{{path: paths.Model, data: modelBytes}, {path: paths.Encoder, data: encBytes}}
	if meta != nil {
		b, err := yaml.Marshal(meta)
		if err != nil {
			return Paths{}, xerrors.Write(op, MetadataFile, err)
		}
		paths.Metadata = filepath.Join(dir, MetadataFile)
		files = append(files, stagedFile{path: paths.Metadata, data: b})
	}

	if path, err := writeAll(files); err != nil {
		return Paths{}, xerrors.Write(op, path, err)
	}
	return paths, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stagedFile is one file of a Save, with its temporary name once written.
type stagedFile struct {
	path string
	data []byte
	tmp  string
}

// writeAll writes every file under a temporary name, then renames them into
// place in order. On failure nothing written by this call is left behind and
// the path that failed is returned with the error.
func writeAll(files []stagedFile) (string, error) {
	discard := func() {
		for _, f := range files {
			if f.tmp != "" {
				os.Remove(f.tmp)
			}
		}
	}
	for i := range files {
		tmp, err := writeTemp(files[i].path, files[i].data)
		if err != nil {
			discard()
			return files[i].path, err
		}
		files[i].tmp = tmp
	}
	for i, f := range files {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.path)
			}
			discard()
			return f.path, err
		}
	}
	return "", nil
}

func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
