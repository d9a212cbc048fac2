package pipeline

import (
	"errors"
	"fmt"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/stats"
)

// Transformer turns a table into dense feature rows.
type Transformer interface {
	Fit(t *dataprep.Table) error
	Transform(t *dataprep.Table) ([][]float64, error)
}

// ColumnTransformer standardizes numeric columns and one-hot encodes
// categorical ones. Each output row is the numeric block followed by the
// indicator block.
type ColumnTransformer struct {
	Schema  Schema
	Scaler  *stats.StandardScaler
	Encoder *dataprep.OneHotEncoder
}

func NewColumnTransformer(s Schema) *ColumnTransformer {
	return &ColumnTransformer{
		Schema:  s,
		Scaler:  stats.NewStandardScaler(),
		Encoder: dataprep.NewOneHotEncoder(),
	}
}

func (ct *ColumnTransformer) Fit(t *dataprep.Table) error {
	if err := ct.Schema.check(t); err != nil {
		return err
	}
	if t.Rows() == 0 {
		return fmt.Errorf("%w: no rows to fit", ErrSchema)
	}
	if len(ct.Schema.Numeric) > 0 {
		if err := ct.Scaler.Fit(ct.numericRows(t)); err != nil {
			return err
		}
	}
	cols := make([][]string, len(ct.Schema.Categorical))
	for j, name := range ct.Schema.Categorical {
		c, _ := t.Col(name)
		cols[j] = c.Strings
	}
	ct.Encoder.Fit(cols)
	return nil
}

func (ct *ColumnTransformer) Transform(t *dataprep.Table) ([][]float64, error) {
	if err := ct.Schema.check(t); err != nil {
		return nil, err
	}
	nNum := len(ct.Schema.Numeric)
	raw := ct.numericRows(t)
	cats := make([]*dataprep.Column, len(ct.Schema.Categorical))
	for j, name := range ct.Schema.Categorical {
		cats[j], _ = t.Col(name)
	}

	out := make([][]float64, t.Rows())
	values := make([]string, len(cats))
	for i := range out {
		row := make([]float64, nNum+ct.Encoder.Width())
		if ct.Scaler.Fitted {
			ct.Scaler.TransformRow(raw[i], row[:nNum])
		} else {
			copy(row, raw[i])
		}
		for j, c := range cats {
			values[j] = c.Strings[i]
		}
		ct.Encoder.TransformRow(values, row[nNum:])
		out[i] = row
	}
	return out, nil
}

func (ct *ColumnTransformer) numericRows(t *dataprep.Table) [][]float64 {
	cols := make([]*dataprep.Column, len(ct.Schema.Numeric))
	for j, name := range ct.Schema.Numeric {
		cols[j], _ = t.Col(name)
	}
	X := make([][]float64, t.Rows())
	for i := range X {
		X[i] = make([]float64, len(cols))
		for j, c := range cols {
			X[i][j] = c.Floats[i]
		}
	}
	return X
}

// Pipeline chains the column transformer and a classifier. A pipeline is
// assembled untrained; Fit trains it in place.
type Pipeline struct {
	Preprocess *ColumnTransformer
	Classifier model.Classifier
	Fitted     bool
}

// Assemble wires a preprocessor for the given columns in front of clf.
func Assemble(categorical, numeric []string, clf model.Classifier) *Pipeline {
	s := Schema{
		Numeric:     append([]string(nil), numeric...),
		Categorical: append([]string(nil), categorical...),
	}
	return &Pipeline{Preprocess: NewColumnTransformer(s), Classifier: clf}
}

// Schema is the column layout the pipeline consumes.
func (p *Pipeline) Schema() Schema { return p.Preprocess.Schema }

// Fit learns the preprocessing statistics from t and trains the classifier
// on the transformed rows and class codes y.
func (p *Pipeline) Fit(t *dataprep.Table, y []int) error {
	if t.Rows() != len(y) {
		return fmt.Errorf("%w: %d rows but %d labels", ErrSchema, t.Rows(), len(y))
	}
	if err := p.Preprocess.Fit(t); err != nil {
		return err
	}
	X, err := p.Preprocess.Transform(t)
	if err != nil {
		return err
	}
	if err := p.Classifier.Fit(X, y); err != nil {
		return err
	}
	p.Fitted = true
	return nil
}

// Predict returns one class code per row of t.
func (p *Pipeline) Predict(t *dataprep.Table) ([]int, error) {
	if !p.Fitted {
		return nil, errors.New("pipeline: not fitted")
	}
	X, err := p.Preprocess.Transform(t)
	if err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return []int{}, nil
	}
	return p.Classifier.Predict(X), nil
}
