package subscriptionservice

import "time"

// Subscription модель активной подписки владельца заказа
type Subscription struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PlanKey   string    `json:"planKey"`
	Features  []string  `json:"features"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HasFeature проверяет, что подписка включает указанную возможность
func (s *Subscription) HasFeature(featureKey string) bool {
	for _, f := range s.Features {
		if f == featureKey {
			return true
		}
	}
	return false
}
