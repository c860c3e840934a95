package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/loofah/internal/adapter"
	"github.com/mmcdole/loofah/internal/domain"
)

func TestTriggerSync(t *testing.T) {
	fake := &fakeRequester{}
	svc := NewSyncService(fake, adapter.NullLogger())

	require.NoError(t, svc.TriggerSync(context.Background()))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodPost, fake.calls[0].Method)
	assert.Equal(t, "/sync", fake.calls[0].Path)
}

func TestSyncStatus(t *testing.T) {
	fake := &fakeRequester{data: map[string]string{
		"/sync/status": `{"running":false,"progress":100,"message":"done"}`,
	}}
	svc := NewSyncService(fake, adapter.NullLogger())

	st, err := svc.SyncStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatus{Running: false, Progress: 100, Message: "done"}, st)
}

func TestSyncStatus_ProgressOutOfRange(t *testing.T) {
	fake := &fakeRequester{data: map[string]string{
		"/sync/status": `{"running":true,"progress":140}`,
	}}
	svc := NewSyncService(fake, adapter.NullLogger())

	_, err := svc.SyncStatus(context.Background())
	assert.ErrorIs(t, err, domain.ErrProtocol)
}

func TestListSyncLogs_NewestFirst(t *testing.T) {
	fake := &fakeRequester{data: map[string]string{
		"/sync-logs": `[
			{"_id":"1","status":"success","sync_time":"Mon, 12 Oct 2026 08:00:00 GMT","duration":12.5},
			{"_id":"2","status":"failed","sync_time":"Wed, 14 Oct 2026 08:00:00 GMT","error_message":"boom"},
			{"_id":"3","status":"success","sync_time":"garbage"}
		]`,
	}}
	svc := NewSyncService(fake, adapter.NullLogger())

	logs, err := svc.ListSyncLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2", logs[0].ID)
	assert.Equal(t, "1", logs[1].ID)
	assert.Equal(t, "3", logs[2].ID)
	assert.False(t, logs[0].Succeeded())
	assert.Equal(t, "12.5s", logs[1].Elapsed().String())
}

func TestGetStats(t *testing.T) {
	fake := &fakeRequester{data: map[string]string{
		"/stats": `{"total":120,"today_new":4,"week_new":30,
		            "type_distribution":{"新丝瓜":50,"生丝瓜":40,"熟丝瓜":30},
		            "daily_trend":[{"date":"10-15","count":3},{"date":"10-16","count":4}]}`,
	}}
	svc := NewStatsService(fake, adapter.NullLogger())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.Total)
	assert.Equal(t, 4, stats.TodayNew)
	assert.Equal(t, 30, stats.WeekNew)
	assert.Equal(t, 50, stats.TypeDistribution["新丝瓜"])
	require.Len(t, stats.DailyTrend, 2)
	assert.Equal(t, domain.TrendPoint{Date: "10-16", Count: 4}, stats.DailyTrend[1])
}

func TestGetStats_EmptyDistribution(t *testing.T) {
	fake := &fakeRequester{data: map[string]string{"/stats": `{"total":0}`}}
	svc := NewStatsService(fake, adapter.NullLogger())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stats.TypeDistribution)
}
