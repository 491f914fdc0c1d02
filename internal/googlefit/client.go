// Package googlefit talks to the Google Fit REST API: the OAuth consent /
// token endpoints via golang.org/x/oauth2 and the daily aggregate endpoint
// for steps, calories and distance.
package googlefit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/daystack/daystack/internal/dateutil"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultBaseURL = "https://www.googleapis.com"

// ErrUnauthorized signals an expired or revoked access token (HTTP 401 from
// the aggregate endpoint). The sync routine branches on it to refresh.
var ErrUnauthorized = errors.New("google fit: access token expired or invalid")

// Data holds one day's aggregated metrics. Calories and distance are rounded
// to the nearest integer; distance is in meters.
type Data struct {
	Steps    int `json:"steps"`
	Calories int `json:"calories"`
	Distance int `json:"distance"`
}

type Client struct {
	oauth   *oauth2.Config
	http    *http.Client
	baseURL string
}

func New(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/fitness.activity.read",
				"https://www.googleapis.com/auth/fitness.location.read",
			},
			Endpoint: google.Endpoint,
		},
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL points the aggregate fetches at a different host. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// AuthCodeURL builds the consent screen URL. State carries the user id so the
// callback can attribute the tokens; offline access + forced consent make
// Google return a refresh token.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for an access/refresh token pair.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google fit code exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("google fit code exchange returned no access token")
	}
	return token, nil
}

// Refresh obtains a fresh access token from a stored refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("google fit token refresh failed: %w", err)
	}
	return token, nil
}

// aggregate data sources, matching what the Fit Android app records.
var metrics = []struct {
	dataTypeName string
	dataSourceID string
}{
	{
		"com.google.step_count.delta",
		"derived:com.google.step_count.delta:com.google.android.gms:estimated_steps",
	},
	{
		"com.google.calories.expended",
		"derived:com.google.calories.expended:com.google.android.gms:merge_calories_expended",
	},
	{
		"com.google.distance.delta",
		"derived:com.google.distance.delta:com.google.android.gms:merge_distance_delta",
	},
}

// DayData fetches the three aggregated metrics for the local calendar day.
// A day with no recorded activity yields zero values, not an error.
func (c *Client) DayData(ctx context.Context, accessToken string, day time.Time) (*Data, error) {
	start, end := dateutil.DayWindow(day)
	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()

	values := make([]float64, len(metrics))
	for i, m := range metrics {
		v, err := c.aggregate(ctx, accessToken, m.dataTypeName, m.dataSourceID, startMillis, endMillis)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return &Data{
		Steps:    int(values[0]),
		Calories: int(math.Round(values[1])),
		Distance: int(math.Round(values[2])),
	}, nil
}

type aggregateRequest struct {
	AggregateBy []aggregateBy `json:"aggregateBy"`
	BucketByTime struct {
		DurationMillis int64 `json:"durationMillis"`
	} `json:"bucketByTime"`
	StartTimeMillis int64 `json:"startTimeMillis"`
	EndTimeMillis   int64 `json:"endTimeMillis"`
}

type aggregateBy struct {
	DataTypeName string `json:"dataTypeName"`
	DataSourceID string `json:"dataSourceId"`
}

type aggregateResponse struct {
	Bucket []struct {
		Dataset []struct {
			Point []struct {
				Value []struct {
					IntVal int64   `json:"intVal"`
					FpVal  float64 `json:"fpVal"`
				} `json:"value"`
			} `json:"point"`
		} `json:"dataset"`
	} `json:"bucket"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) aggregate(ctx context.Context, accessToken, dataTypeName, dataSourceID string, startMillis, endMillis int64) (float64, error) {
	reqBody := aggregateRequest{
		AggregateBy:     []aggregateBy{{DataTypeName: dataTypeName, DataSourceID: dataSourceID}},
		StartTimeMillis: startMillis,
		EndTimeMillis:   endMillis,
	}
	reqBody.BucketByTime.DurationMillis = endMillis - startMillis

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/fitness/v1/users/me/dataset:aggregate", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("google fit aggregate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return 0, ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var parsed aggregateResponse
	err = json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		if err == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return 0, fmt.Errorf("google fit api error: %s", parsed.Error.Message)
		}
		return 0, fmt.Errorf("google fit api error: %s", resp.Status)
	}
	if err != nil {
		return 0, fmt.Errorf("google fit aggregate response invalid: %w", err)
	}

	// Absent buckets/points mean no recorded activity for the window.
	if len(parsed.Bucket) == 0 || len(parsed.Bucket[0].Dataset) == 0 ||
		len(parsed.Bucket[0].Dataset[0].Point) == 0 ||
		len(parsed.Bucket[0].Dataset[0].Point[0].Value) == 0 {
		return 0, nil
	}

	v := parsed.Bucket[0].Dataset[0].Point[0].Value[0]
	if v.IntVal != 0 {
		return float64(v.IntVal), nil
	}
	return v.FpVal, nil
}
