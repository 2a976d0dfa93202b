package membership

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultConflict = "conflict"
	resultInvalid  = "invalid"
	resultError    = "error"
)

var (
	operationsOnce sync.Once
	operations     *prometheus.CounterVec
)

func operationCounter() *prometheus.CounterVec {
	operationsOnce.Do(func() {
		operations = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "membership_operations_total",
			Help: "Number of membership engine operations by result",
		}, []string{"operation", "result"})
	})

	return operations
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrGroupNotFound):
		return resultNotFound
	case errors.Is(err, ErrUserExists), errors.Is(err, ErrGroupExists):
		return resultConflict
	case errors.Is(err, ErrValidation):
		return resultInvalid
	default:
		return resultError
	}
}

// observe counts op by the outcome of err and returns err unchanged.
func observe(op string, err error) error {
	operationCounter().WithLabelValues(op, resultLabel(err)).Inc()

	return err
}
