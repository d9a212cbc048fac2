package serve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/dataprep"
)

// SleepInput is one subject's measurements, keyed by canonical column names.
// Every field is required.
type SleepInput struct {
	Gender                *string  `json:"gender"`
	Age                   *float64 `json:"age"`
	Occupation            *string  `json:"occupation"`
	SleepDuration         *float64 `json:"sleep_duration"`
	QualityOfSleep        *float64 `json:"quality_of_sleep"`
	PhysicalActivityLevel *float64 `json:"physical_activity_level"`
	StressLevel           *float64 `json:"stress_level"`
	BMICategory           *string  `json:"bmi_category"`
	BloodPressure         *string  `json:"blood_pressure"`
	HeartRate             *float64 `json:"heart_rate"`
	DailySteps            *float64 `json:"daily_steps"`
}

// DecodeInput reads a SleepInput from JSON, rejecting unknown fields.
func DecodeInput(r io.Reader) (*SleepInput, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	in := &SleepInput{}
	if err := dec.Decode(in); err != nil {
		return nil, fmt.Errorf("malformed input: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("malformed input: trailing data")
	}
	return in, nil
}

// Table turns the input into a single-row table. It fails when a field is
// absent or a text field is blank.
func (in *SleepInput) Table() (*dataprep.Table, error) {
	var missing []string
	text := func(name string, v *string) *dataprep.Column {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
			return dataprep.Categories(name, "")
		}
		return dataprep.Categories(name, *v)
	}
	num := func(name string, v *float64) *dataprep.Column {
		if v == nil {
			missing = append(missing, name)
			return dataprep.Numbers(name, 0)
		}
		return dataprep.Numbers(name, *v)
	}

	t := dataprep.NewTable(
		text("gender", in.Gender),
		num("age", in.Age),
		text("occupation", in.Occupation),
		num("sleep_duration", in.SleepDuration),
		num("quality_of_sleep", in.QualityOfSleep),
		num("physical_activity_level", in.PhysicalActivityLevel),
		num("stress_level", in.StressLevel),
		text("bmi_category", in.BMICategory),
		text("blood_pressure", in.BloodPressure),
		num("heart_rate", in.HeartRate),
		num("daily_steps", in.DailySteps),
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return t, nil
}

// Advice is the operator-facing message for a predicted class.
func Advice(class string) string {
	switch class {
	case dataprep.NoDisorder, dataprep.MissingCategory:
		return "No significant sleep disorder risk detected. Keep up the healthy lifestyle."
	case "Insomnia":
		return "Risk of insomnia detected. Consider consulting a doctor or improving your sleep schedule."
	case "Sleep Apnea":
		return "Risk of sleep apnea detected. Please seek medical attention as soon as possible."
	default:
		return class
	}
}
