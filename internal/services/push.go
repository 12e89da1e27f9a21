package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/listloop/backend/internal/config"
	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushService stores device tokens and delivers push messages through the
// Expo push gateway. Delivery is best effort: a failed batch is logged and
// dropped, never retried into the caller's request.
type PushService struct {
	db      *gorm.DB
	cfg     *config.PushConfig
	httpCli *http.Client
}

func NewPushService(db *gorm.DB, cfg *config.PushConfig) *PushService {
	return &PushService{
		db:  db,
		cfg: cfg,
		httpCli: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RegisterToken stores a device token for a user. Re-registering the same
// token is a no-op.
func (s *PushService) RegisterToken(userID uint, token, platform string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	record := models.UserPushToken{
		UserID:   userID,
		Token:    token,
		Platform: platform,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoNothing: true,
	}).Create(&record).Error
}

// RemoveToken deletes a device token, typically on sign-out.
func (s *PushService) RemoveToken(userID uint, token string) error {
	return s.db.Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.UserPushToken{}).Error
}

// TokensForUsers returns every registered token for the given users.
func (s *PushService) TokensForUsers(userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var records []models.UserPushToken
	if err := s.db.Where("user_id IN ?", userIDs).Find(&records).Error; err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(records))
	for _, r := range records {
		tokens = append(tokens, r.Token)
	}
	return tokens, nil
}

// PushMessage is the Expo push API request shape.
type PushMessage struct {
	To    []string       `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
	Sound string         `json:"sound,omitempty"`
	Badge int            `json:"badge,omitempty"`
}

// SendToUsers resolves the users' tokens and delivers one message to all of
// them, chunked to the gateway's batch limit.
func (s *PushService) SendToUsers(userIDs []uint, title, body string, data map[string]any) error {
	if !s.cfg.Enabled {
		return nil
	}

	tokens, err := s.TokensForUsers(userIDs)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(tokens); start += batchSize {
		end := start + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		msg := PushMessage{
			To:    tokens[start:end],
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		}
		if err := s.sendBatch(&msg); err != nil {
			logger.Warn().Err(err).Int("tokens", end-start).
				Msg("push batch delivery failed")
		}
	}
	return nil
}

func (s *PushService) sendBatch(msg *PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
