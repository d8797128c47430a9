package sqs

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"logindash/internal/domain/login"
)

const (
	apiVersion = "2012-11-05"
	// SQS удаляет не больше 10 сообщений за вызов
	maxDeleteBatch = 10
)

// Client ходит в SQS-совместимую очередь (AWS query API, ответы в XML)
type Client struct {
	httpClient *http.Client
	queueURL   string
	// таймаут запроса сверх WaitTimeSeconds
	timeout time.Duration
	log     *slog.Logger
}

func NewClient(queueURL string, requestTimeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    4,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		queueURL: queueURL,
		timeout:  requestTimeout,
		log:      log.With(slog.String("component", "sqs_client")),
	}
}

// APIError - ответ очереди с кодом, отличным от 200
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sqs error %d %s: %s", e.Status, e.Code, e.Message)
}

type errorResponse struct {
	Error struct {
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
}

type receiveMessageResponse struct {
	XMLName xml.Name `xml:"ReceiveMessageResponse"`
	Result  struct {
		Messages []struct {
			MessageID     string `xml:"MessageId"`
			ReceiptHandle string `xml:"ReceiptHandle"`
			Body          string `xml:"Body"`
		} `xml:"Message"`
	} `xml:"ReceiveMessageResult"`
}

type deleteMessageBatchResponse struct {
	XMLName xml.Name `xml:"DeleteMessageBatchResponse"`
	Result  struct {
		Failed []struct {
			ID      string `xml:"Id"`
			Code    string `xml:"Code"`
			Message string `xml:"Message"`
		} `xml:"BatchResultErrorEntry"`
	} `xml:"DeleteMessageBatchResult"`
}

// Receive - ReceiveMessage с long polling на wait
func (c *Client) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]login.Message, error) {
	form := url.Values{}
	form.Set("MaxNumberOfMessages", strconv.Itoa(maxMessages))
	form.Set("WaitTimeSeconds", strconv.Itoa(int(wait/time.Second)))

	ctx, cancel := context.WithTimeout(ctx, wait+c.timeout)
	defer cancel()

	var resp receiveMessageResponse
	if err := c.call(ctx, "ReceiveMessage", form, &resp); err != nil {
		return nil, err
	}

	messages := make([]login.Message, 0, len(resp.Result.Messages))
	for _, m := range resp.Result.Messages {
		messages = append(messages, login.Message{
			ID:            m.MessageID,
			ReceiptHandle: m.ReceiptHandle,
			Body:          m.Body,
		})
	}

	c.log.Debug("Получены сообщения", slog.Int("count", len(messages)))
	return messages, nil
}

// Delete - DeleteMessageBatch пачками по 10
func (c *Client) Delete(ctx context.Context, messages []login.Message) error {
	for start := 0; start < len(messages); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(messages))
		if err := c.deleteBatch(ctx, messages[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) deleteBatch(ctx context.Context, messages []login.Message) error {
	form := url.Values{}
	for i, m := range messages {
		prefix := fmt.Sprintf("DeleteMessageBatchRequestEntry.%d.", i+1)
		form.Set(prefix+"Id", strconv.Itoa(i))
		form.Set(prefix+"ReceiptHandle", m.ReceiptHandle)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp deleteMessageBatchResponse
	if err := c.call(ctx, "DeleteMessageBatch", form, &resp); err != nil {
		return err
	}

	if len(resp.Result.Failed) > 0 {
		failed := make([]string, 0, len(resp.Result.Failed))
		for _, f := range resp.Result.Failed {
			failed = append(failed, fmt.Sprintf("%s: %s %s", f.ID, f.Code, f.Message))
		}
		return fmt.Errorf("delete %d of %d messages failed: %s",
			len(failed), len(messages), strings.Join(failed, "; "))
	}
	return nil
}

func (c *Client) call(ctx context.Context, action string, form url.Values, out any) error {
	form.Set("Action", action)
	form.Set("QueueUrl", c.queueURL)
	form.Set("Version", apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queueURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", action, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var er errorResponse
		if xml.Unmarshal(body, &er) == nil {
			apiErr.Code, apiErr.Message = er.Error.Code, er.Error.Message
		}
		return fmt.Errorf("%s: %w", action, apiErr)
	}

	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", action, err)
	}
	return nil
}
