package consultationapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/domain"
)

// Client клиент внешнего consultation API (занятые слоты + инициация оплаты)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    MetricsRecorder // может быть nil
}

// NewClient создает новый экземпляр клиента consultation API
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics MetricsRecorder) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// FetchBookedTimes получает занятые слоты на дату (YYYY-MM-DD)
// Никогда не подменяет ошибку пустым списком: решение о fail-open/fail-closed
// принимают usecases, а не транспортный слой
func (c *Client) FetchBookedTimes(ctx context.Context, date string) ([]domain.BookedSlot, error) {
	start := time.Now()

	slots, err := c.fetchBookedTimes(ctx, date)
	c.observe("fetch_booked_times", err, start)
	return slots, err
}

func (c *Client) fetchBookedTimes(ctx context.Context, date string) ([]domain.BookedSlot, error) {
	reqURL := fmt.Sprintf("%s/api/consultation/fetch-booked-times?date=%s", c.baseURL, url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var parsed BookedTimesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Прикладной код проверяется отдельно от HTTP статуса
	if parsed.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: application code %d", ErrInvalidResponse, parsed.Code)
	}

	if parsed.BookedTimes == nil {
		return []domain.BookedSlot{}, nil
	}

	return parsed.BookedTimes, nil
}

// Initiate инициирует консультацию и оплату
// apiToken передаётся явным параметром: клиент не читает никакого ambient-хранилища
func (c *Client) Initiate(ctx context.Context, apiToken string, req *InitiateRequest) (*InitiateResponse, error) {
	start := time.Now()

	resp, err := c.initiate(ctx, apiToken, req)
	c.observe("initiate", err, start)
	return resp, err
}

func (c *Client) initiate(ctx context.Context, apiToken string, initReq *InitiateRequest) (*InitiateResponse, error) {
	form := url.Values{}
	form.Set("name", initReq.Name)
	form.Set("email", initReq.Email)
	form.Set("phone", initReq.Phone)
	form.Set("age_range", initReq.AgeRange)
	form.Set("gender", initReq.Gender)
	form.Set("skin_type", initReq.SkinType)
	form.Set("skin_concerns", initReq.SkinConcerns)
	form.Set("channel", initReq.Channel)
	form.Set("date", initReq.Date)
	form.Set("time_range", initReq.TimeRange)
	form.Set("success_redirect", initReq.SuccessRedirect)
	form.Set("current_skincare_products", initReq.CurrentProducts)
	form.Set("additional_details", initReq.AdditionalDetails)

	reqURL := c.baseURL + "/api/consultation/initiate"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	var parsed InitiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Прикладной отказ: сервер вернул code != 200 с сообщением для пользователя
	if parsed.Code != http.StatusOK {
		c.log.Warn("Initiate: remote rejection code=%d message=%q", parsed.Code, parsed.Message)
		return nil, &RemoteError{Code: parsed.Code, Message: parsed.Message}
	}

	if parsed.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: success response without authorization_url", ErrInvalidResponse)
	}

	return &parsed, nil
}

func (c *Client) observe(operation string, err error, start time.Time) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveUpstreamRequest(operation, outcome, time.Since(start).Seconds())
}
