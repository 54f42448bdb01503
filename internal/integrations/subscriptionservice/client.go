package subscriptionservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с SubscriptionService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SubscriptionService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetActiveSubscription получает активную подписку пользователя
func (c *Client) GetActiveSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	url := fmt.Sprintf("%s/internal/users/%d/subscription", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrSubscriptionNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var subscription Subscription
	if err := json.NewDecoder(resp.Body).Decode(&subscription); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &subscription, nil
}

// HasFeature проверяет, что активная подписка пользователя включает
// указанную возможность. Отсутствие подписки трактуется как false, а не ошибка.
func (c *Client) HasFeature(ctx context.Context, userID int64, featureKey string) (bool, error) {
	subscription, err := c.GetActiveSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.log.Info("No active subscription for user=%d", userID)
			return false, nil
		}
		return false, err
	}

	return subscription.HasFeature(featureKey), nil
}
