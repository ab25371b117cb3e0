package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRunsImmediately(t *testing.T) {
	fetcher := &fakeFetcher{rows: map[string][][]string{
		"Sheet1": {header(), sheetRow("5_march_2025", "p:+91 98765 43210")},
	}}
	upserter := &fakeUpserter{}
	orch := newTestOrchestrator(fetcher, &fakeResolver{}, upserter, nil, "Sheet1")

	sched, err := NewScheduler(orch, 30)
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		return upserter.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_ClampsInterval(t *testing.T) {
	orch := newTestOrchestrator(&fakeFetcher{}, &fakeResolver{}, &fakeUpserter{}, nil)

	sched, err := NewScheduler(orch, 0)
	require.NoError(t, err)
	sched.Start()
	sched.Stop()
}
