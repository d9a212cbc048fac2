package optim

// GD is plain gradient descent with an optional L2 (weight decay) term.
type GD struct {
	LearningRate float64
	WeightDecay  float64
}

func NewGD(lr, weightDecay float64) *GD { return &GD{LearningRate: lr, WeightDecay: weightDecay} }

// Step updates weights in place: w -= lr * (g + decay * w).
func (o *GD) Step(weights, grads []float64) {
	for i := range weights {
		weights[i] -= o.LearningRate * (grads[i] + o.WeightDecay*weights[i])
	}
}
