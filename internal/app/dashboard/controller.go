package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	requestIDHeader = "X-Request-ID"
	userAgent       = "LoginDash/1.0"
	maxErrorBody    = 512
)

// Controller строит запрос из ViewState и выполняет его. Каждый вызов независим:
// без повторов, без кэша, без склейки страниц.
type Controller struct {
	client       *http.Client
	endpoint     string
	log          *slog.Logger
	newRequestID func() string
}

func NewController(endpoint string, timeout time.Duration, log *slog.Logger) *Controller {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &Controller{
		client:       client,
		endpoint:     endpoint,
		log:          log.With(slog.String("component", "dashboard_controller")),
		newRequestID: uuid.NewString,
	}
}

func (c *Controller) Endpoint() string {
	return c.endpoint
}

// URL возвращает полный адрес запроса для состояния
func (c *Controller) URL(state ViewState) string {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + state.Query()
}

// Fetch выполняет один GET. Ошибки: *TransportError, *StatusError, *ParseError.
func (c *Controller) Fetch(ctx context.Context, state ViewState) (RecordSet, error) {
	url := c.URL(state)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RecordSet{}, &TransportError{URL: url, Err: err}
	}

	reqID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, reqID)

	c.log.Debug("Отправка запроса",
		slog.String("url", url),
		slog.String("request_id", reqID),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return RecordSet{}, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RecordSet{}, &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug("Получен ответ",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.String("request_id", reqID),
	)

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return RecordSet{}, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return ParseRecordSet(body)
}

// Result - итог одного нажатия "Fetch Data": записи либо ошибка, но не оба сразу
type Result struct {
	State    ViewState
	URL      string
	Records  RecordSet
	Err      error
	Duration time.Duration
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Message - текст ошибки для пользователя, пустой при успехе
func (r Result) Message() string {
	return ErrorMessage(r.Err)
}

// Load вызывает Fetch и гасит любую ошибку в Result: сессия продолжает работать,
// на экран выводится пустая таблица и сообщение.
func (c *Controller) Load(ctx context.Context, state ViewState) Result {
	start := time.Now()
	records, err := c.Fetch(ctx, state)

	res := Result{
		State:    state,
		URL:      c.URL(state),
		Records:  records,
		Err:      err,
		Duration: time.Since(start),
	}

	if err != nil {
		res.Records = RecordSet{}
		c.log.Error("Ошибка получения данных",
			slog.String("url", res.URL),
			slog.Any("error", err),
		)
		return res
	}

	c.log.Info("Данные получены",
		slog.Int("records", records.Len()),
		slog.Int("columns", len(records.Columns)),
		slog.Duration("duration", res.Duration),
	)
	return res
}
