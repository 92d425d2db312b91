package placement

import "github.com/pkg/errors"

var (
	ErrNoRecognizers         = errors.New("placement: at least one recognizer is required")
	ErrSequenceTooShort      = errors.New("placement: sequence too short for recognizer chain")
	ErrBadMatrixShape        = errors.New("placement: bad recognizer matrix shape")
	ErrBadConnectorShape     = errors.New("placement: bad connector data shape")
	ErrGapTableTooNarrow     = errors.New("placement: precomputed connector table too narrow")
	ErrLogFactorialsTooShort = errors.New("placement: log-factorial table too short")
	ErrBufferTooSmall        = errors.New("placement: output buffer too small")
)
