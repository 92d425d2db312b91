package chain

import "math"

const (
	// PseudoProbability floors PWM entries so log-odds stay finite.
	PseudoProbability = 1e-3
	background        = 0.25
)

func logOdds(p float64) float64 {
	return math.Log2(math.Max(p, PseudoProbability) / background)
}

// PSSMFromPWM converts base probabilities into log2-odds scores against a
// uniform background.
func PSSMFromPWM(pwm []Column) []Column {
	out := make([]Column, len(pwm))
	for i, c := range pwm {
		out[i] = Column{A: logOdds(c.A), G: logOdds(c.G), C: logOdds(c.C), T: logOdds(c.T)}
	}
	return out
}

// NewRecognizerFromPWM builds a recognizer whose scores derive from pwm.
func NewRecognizerFromPWM(name string, pwm []Column) Recognizer {
	return Recognizer{
		Name: name,
		PSSM: PSSMFromPWM(pwm),
		PWM:  append([]Column(nil), pwm...),
	}
}
