// Command sleepml trains, cleans data for, and serves the sleep disorder
// classifier.
//
// Example:
//
//	sleepml clean --input Sleep_health_and_lifestyle_dataset.csv --output sleep_data.csv
//	sleepml train --train data --model-dir model --model_type svm --kernel linear
//	sleepml serve --model-dir model --port 8080
package main

import (
	"os"
)

func main() {
	cli := newCLI()
	err := cli.rootCommand().Execute()
	if cerr := cli.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}
