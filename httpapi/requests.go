package httpapi

import (
	"errors"
	"strings"

	"clickduel/models"
)

type createRoomRequest struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	BetAmount int64  `json:"bet_amount"`
	ChannelID *int64 `json:"channel_id,omitempty"`
}

func (r *createRoomRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if r.BetAmount <= 0 {
		return errors.New("bet_amount must be positive")
	}
	return nil
}

type joinRoomRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (r *joinRoomRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

type playerActionRequest struct {
	UserID int64 `json:"user_id"`
}

func (r *playerActionRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	return nil
}

type shareRoomRequest struct {
	UserID    int64  `json:"user_id"`
	ChannelID *int64 `json:"channel_id,omitempty"`
}

func (r *shareRoomRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	return nil
}

type initUserRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (r *initUserRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

type tokenJoinRequest struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (r *tokenJoinRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token is required")
	}
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

type settleResponse struct {
	Room        *models.Room `json:"room"`
	WinnerID    *int64       `json:"winner_id,omitempty"`
	Draw        bool         `json:"draw"`
	HostClicks  int          `json:"host_clicks"`
	GuestClicks int          `json:"guest_clicks"`
	BetAmount   int64        `json:"bet_amount"`
}
