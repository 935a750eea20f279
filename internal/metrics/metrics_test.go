package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCall(t *testing.T) {
	before := testutil.ToFloat64(ToolCallsTotal.WithLabelValues("sum", OutcomeOK))
	ObserveCall("sum", OutcomeOK, time.Now())
	ObserveCall("sum", OutcomeOK, time.Now())
	assert.Equal(t, before+2, testutil.ToFloat64(ToolCallsTotal.WithLabelValues("sum", OutcomeOK)))
}

func TestObserveRejection(t *testing.T) {
	before := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues("precision"))
	ObserveRejection("precision")
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues("precision")))
}
