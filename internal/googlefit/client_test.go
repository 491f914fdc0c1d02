package googlefit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daystack/daystack/internal/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateBody(value string) string {
	return fmt.Sprintf(`{"bucket":[{"dataset":[{"point":[{"value":[%s]}]}]}]}`, value)
}

// fitServer answers the aggregate endpoint per data type.
func fitServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("client-id", "client-secret", "http://localhost/callback").WithBaseURL(srv.URL)
}

func testDay(t *testing.T) time.Time {
	t.Helper()
	day, err := dateutil.ParseLocal("2024-06-15")
	require.NoError(t, err)
	return day
}

func TestDayData(t *testing.T) {
	client := fitServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/fitness/v1/users/me/dataset:aggregate", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var req aggregateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.AggregateBy, 1)

		switch req.AggregateBy[0].DataTypeName {
		case "com.google.step_count.delta":
			fmt.Fprint(w, aggregateBody(`{"intVal":8421}`))
		case "com.google.calories.expended":
			fmt.Fprint(w, aggregateBody(`{"fpVal":1834.6}`))
		case "com.google.distance.delta":
			fmt.Fprint(w, aggregateBody(`{"fpVal":6210.4}`))
		default:
			t.Errorf("unexpected data type %s", req.AggregateBy[0].DataTypeName)
		}
	})

	data, err := client.DayData(context.Background(), "token-1", testDay(t))
	require.NoError(t, err)

	assert.Equal(t, 8421, data.Steps)
	assert.Equal(t, 1835, data.Calories, "calories round to nearest int")
	assert.Equal(t, 6210, data.Distance, "distance rounds to nearest int")
}

func TestDayDataWindow(t *testing.T) {
	var gotStart, gotEnd int64
	client := fitServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req aggregateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotStart = req.StartTimeMillis
		gotEnd = req.EndTimeMillis
		fmt.Fprint(w, `{"bucket":[]}`)
	})

	day := testDay(t)
	_, err := client.DayData(context.Background(), "tok", day)
	require.NoError(t, err)

	start, end := dateutil.DayWindow(day)
	assert.Equal(t, start.UnixMilli(), gotStart)
	assert.Equal(t, end.UnixMilli(), gotEnd)
	assert.Equal(t, int64(24*60*60*1000-1), gotEnd-gotStart)
}

func TestDayDataNoActivity(t *testing.T) {
	// Empty buckets mean no recorded activity: zeros, not an error.
	client := fitServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bucket":[]}`)
	})

	data, err := client.DayData(context.Background(), "tok", testDay(t))
	require.NoError(t, err)

	assert.Equal(t, &Data{Steps: 0, Calories: 0, Distance: 0}, data)
}

func TestDayDataUnauthorized(t *testing.T) {
	client := fitServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Invalid Credentials"}}`)
	})

	_, err := client.DayData(context.Background(), "expired", testDay(t))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDayDataAPIError(t *testing.T) {
	client := fitServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"Fitness API has not been used"}}`)
	})

	_, err := client.DayData(context.Background(), "tok", testDay(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Fitness API has not been used")
}

func TestAuthCodeURL(t *testing.T) {
	client := New("client-id", "client-secret", "http://localhost/callback")

	u := client.AuthCodeURL("user-42")

	assert.Contains(t, u, "accounts.google.com")
	assert.Contains(t, u, "state=user-42")
	assert.Contains(t, u, "access_type=offline")
	assert.Contains(t, u, "prompt=consent")
	assert.Contains(t, u, "fitness.activity.read")
}
