package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.Derivation()
	r.Derivation()
	r.Mutation("add", ResultOK)
	r.Mutation("delete", ResultNotFound)
	r.ValidationFailed("email", "role", "email")
	r.ObserveSave(300 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.derivations))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.mutations.WithLabelValues("add", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.mutations.WithLabelValues("delete", ResultNotFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.validationFailures.WithLabelValues("email")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.saveLatency))
}

func TestRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Derivation()
		r.Mutation("update", ResultError)
		r.ValidationFailed("firstName")
		r.ObserveSave(time.Second)
	})
}
