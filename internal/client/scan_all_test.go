package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestScanAllClient(t *testing.T) {
	t.Parallel()

	runEndpointTests(t, []endpointTest{
		{
			Name: "metrics",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.ScanAll().Metrics(ctx)
			},
			Response: stubResponse{
				Body: `{"total":10,"completed":4,"metrics":{"Success":3,"Error":1},"ongoing":true,"trigger":"Manual"}`,
			},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathScanAllMetrics,
			Check: func(t *testing.T, result any) {
				stats, ok := result.(*harbor.Stats)
				require.True(t, ok)
				assert.Equal(t, int64(10), stats.Total)
				assert.Equal(t, int64(3), stats.Metrics["Success"])
				assert.True(t, stats.Ongoing)
			},
		},
		{
			Name: "get schedule",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.ScanAll().GetSchedule(ctx)
			},
			Response: stubResponse{
				Body: `{"id":1,"schedule":{"type":"Daily","cron":"0 0 0 * * *","next_scheduled_time":"2024-01-02T00:00:00Z"}}`,
			},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathScanAllSchedule,
			Check: func(t *testing.T, result any) {
				schedule, ok := result.(*harbor.Schedule)
				require.True(t, ok)
				require.NotNil(t, schedule.Schedule)
				assert.Equal(t, "Daily", schedule.Schedule.Type)
				require.NotNil(t, schedule.Schedule.NextScheduledTime)
			},
		},
		{
			Name: "create schedule",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.ScanAll().CreateSchedule(ctx, &harbor.Schedule{
					Schedule: &harbor.ScheduleObj{Type: "Weekly", Cron: "0 0 0 * * 0"},
				})
			},
			Response: stubResponse{
				Status:  http.StatusCreated,
				Headers: map[string]string{constants.HeaderLocation: "/api/v2.0/system/scanAll/schedule"},
			},
			WantMethod: http.MethodPost,
			WantPath:   constants.PathScanAllSchedule,
			WantBody:   `{"schedule":{"type":"Weekly","cron":"0 0 0 * * 0"}}`,
			Check: func(t *testing.T, result any) {
				assert.Equal(t, "/api/v2.0/system/scanAll/schedule", result)
			},
		},
		{
			Name: "update schedule",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.ScanAll().UpdateSchedule(ctx, &harbor.Schedule{
					Schedule: &harbor.ScheduleObj{Type: "None"},
				})
			},
			WantMethod: http.MethodPut,
			WantPath:   constants.PathScanAllSchedule,
			WantBody:   `{"schedule":{"type":"None"}}`,
		},
		{
			Name: "stop",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.ScanAll().Stop(ctx)
			},
			Response:   stubResponse{Status: http.StatusAccepted},
			WantMethod: http.MethodPost,
			WantPath:   constants.PathScanAllStop,
		},
		{
			Name: "stop forbidden",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.ScanAll().Stop(ctx)
			},
			Response: stubResponse{
				Status: http.StatusForbidden,
				Body:   `{"errors":[{"code":"FORBIDDEN","message":"forbidden"}]}`,
			},
			WantMethod: http.MethodPost,
			WantErr:    harbor.ErrForbidden,
		},
	})
}
