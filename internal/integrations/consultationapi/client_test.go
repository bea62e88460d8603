package consultationapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nopLogger{}, nil), srv
}

func TestFetchBookedTimes(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/consultation/fetch-booked-times", r.URL.Path)
			assert.Equal(t, "2026-09-07", r.URL.Query().Get("date"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code":200,"booked_times":[{"date":"2026-09-07","time_range":"2:00 PM - 3:00 PM"}]}`))
		})

		slots, err := client.FetchBookedTimes(context.Background(), "2026-09-07")
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, domain.BookedSlot{Date: "2026-09-07", TimeRange: "2:00 PM - 3:00 PM"}, slots[0])
	})

	t.Run("Empty List Normalized", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200}`))
		})

		slots, err := client.FetchBookedTimes(context.Background(), "2026-09-07")
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("HTTP Error Status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.FetchBookedTimes(context.Background(), "2026-09-07")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("Application Code Error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":500,"booked_times":[]}`))
		})

		_, err := client.FetchBookedTimes(context.Background(), "2026-09-07")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("Transport Failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // соединение будет отклонено
		client := NewClient(srv.URL, time.Second, nopLogger{}, nil)

		_, err := client.FetchBookedTimes(context.Background(), "2026-09-07")
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestInitiate(t *testing.T) {
	validRequest := &InitiateRequest{
		Name:            "Ada Obi",
		Email:           "ada@example.com",
		Phone:           "08012345678",
		AgeRange:        "25-34",
		Gender:          "female",
		SkinType:        "oily",
		SkinConcerns:    "acne,aging",
		Channel:         "whatsapp",
		Date:            "2026-09-07",
		TimeRange:       "3:00 PM - 4:00 PM",
		SuccessRedirect: "https://shop.example.com/consultation/success",
	}

	t.Run("Success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/consultation/initiate", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "Ada Obi", r.PostForm.Get("name"))
			assert.Equal(t, "acne,aging", r.PostForm.Get("skin_concerns"))
			assert.Equal(t, "whatsapp", r.PostForm.Get("channel"))
			assert.Equal(t, "3:00 PM - 4:00 PM", r.PostForm.Get("time_range"))

			_, _ = w.Write([]byte(`{"code":200,"authorization_url":"https://pay.example/abc","amount_calculated":10000}`))
		})

		resp, err := client.Initiate(context.Background(), "secret-token", validRequest)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/abc", resp.AuthorizationURL)
		assert.Equal(t, 10000.0, resp.AmountCalculated)
	})

	t.Run("Remote Rejection Carries Message", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":400,"message":"invalid phone number"}`))
		})

		_, err := client.Initiate(context.Background(), "secret-token", validRequest)
		require.ErrorIs(t, err, ErrRemote)

		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, 400, remoteErr.Code)
		assert.Equal(t, "invalid phone number", remoteErr.Message)
	})

	t.Run("Missing Authorization URL", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200}`))
		})

		_, err := client.Initiate(context.Background(), "secret-token", validRequest)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}
