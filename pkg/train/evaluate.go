package train

import (
	"fmt"

	"github.com/sjwhitworth/golearn/evaluation"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/model"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/pipeline"
)

// Metrics are the held-out scores of a fitted pipeline.
type Metrics struct {
	Accuracy   float64
	F1Weighted float64
	Confusion  evaluation.ConfusionMatrix
	// Report is the per-class precision/recall/F1 table.
	Report string
	// Predicted holds the test predictions as class codes.
	Predicted []int
}

// FitAndEvaluate fits p in place on the training partition and scores it on
// the test partition. classes[code] names each class code.
func FitAndEvaluate(p *pipeline.Pipeline, xTrain *dataprep.Table, yTrain []int, xTest *dataprep.Table, yTest []int, classes []string) (*Metrics, error) {
	if err := Fit(p, xTrain, yTrain); err != nil {
		return nil, err
	}
	return Evaluate(p, xTest, yTest, classes)
}

// Fit trains p in place on the training partition.
func Fit(p *pipeline.Pipeline, xTrain *dataprep.Table, yTrain []int) error {
	if err := p.Fit(xTrain, yTrain); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	return nil
}

// Evaluate scores a fitted p on the test partition.
func Evaluate(p *pipeline.Pipeline, xTest *dataprep.Table, yTest []int, classes []string) (*Metrics, error) {
	pred, err := p.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predict test partition: %w", err)
	}
	if len(pred) != len(yTest) {
		return nil, fmt.Errorf("predict test partition: %d predictions for %d rows", len(pred), len(yTest))
	}

	actual, err := names(yTest, classes)
	if err != nil {
		return nil, err
	}
	predicted, err := names(pred, classes)
	if err != nil {
		return nil, err
	}
	cm := model.ConfusionMatrix(actual, predicted)
	return &Metrics{
		Accuracy:   model.Accuracy(yTest, pred),
		F1Weighted: model.WeightedF1(cm),
		Confusion:  cm,
		Report:     model.Report(cm),
		Predicted:  pred,
	}, nil
}

func names(codes []int, classes []string) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(classes) {
			return nil, fmt.Errorf("class code %d out of range [0, %d)", c, len(classes))
		}
		out[i] = classes[c]
	}
	return out, nil
}

// GroupAccuracy is accuracy computed separately for each distinct value of groups.
func GroupAccuracy(groups []string, yTrue, yPred []int) map[string]float64 {
	hit := map[string]int{}
	total := map[string]int{}
	for i, g := range groups {
		total[g]++
		if yTrue[i] == yPred[i] {
			hit[g]++
		}
	}
	out := make(map[string]float64, len(total))
	for g, n := range total {
		out[g] = float64(hit[g]) / float64(n)
	}
	return out
}
