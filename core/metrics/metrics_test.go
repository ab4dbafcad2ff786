package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"rinksync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRunExposesSeries(t *testing.T) {
	m := New()
	m.RecordRun(reconcile.Result{
		Created:          2,
		Updated:          1,
		Migrated:         1,
		Removed:          3,
		SourceCollisions: 1,
		Failed:           1,
	}, 7, 2*time.Second)
	m.RecordFailure()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `rinksync_runs_total{outcome="ok"} 1`)
	assert.Contains(t, body, `rinksync_runs_total{outcome="failed"} 1`)
	assert.Contains(t, body, `rinksync_actions_total{kind="create"} 2`)
	assert.Contains(t, body, `rinksync_actions_total{kind="delete"} 3`)
	assert.Contains(t, body, `rinksync_action_failures_total 1`)
	assert.Contains(t, body, `rinksync_identity_collisions_total 1`)
	assert.Contains(t, body, `rinksync_managed_events 7`)
}

func TestSeparateRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New()
	b := New()
	assert.NotSame(t, a.registry, b.registry)
}
