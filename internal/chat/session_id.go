package chat

import "github.com/rudra-raghu108/mist-backend/internal/common"

func NewSessionID() (string, error) {
	return common.NewULID()
}
