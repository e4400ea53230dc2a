package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrUserAlreadyExists = errors.New("user_already_exists")
	ErrUserNotFound      = errors.New("user_not_found")
	ErrSecurityNotFound  = errors.New("security_not_found")
	ErrOrderNotFound     = errors.New("order_not_found")
	ErrOrderNotEditable  = errors.New("order_not_editable")
	ErrRoundNotFound     = errors.New("round_not_found")
	ErrRoundConcluded    = errors.New("round_concluded")
	ErrChatRoomNotFound  = errors.New("chat_room_not_found")
	ErrNotOwner          = errors.New("resource_not_owned")
	ErrNotAuthorized     = errors.New("not_authorized")
)

// Integrity errors indicate corrupted state or an upstream concurrency
// bug. Callers must abort the current batch run and surface them, never
// skip and continue.
var (
	ErrMultipleActiveRounds = errors.New("multiple_active_rounds")
	ErrOrderAlreadyMatched  = errors.New("order_already_matched")
	ErrUnknownBanIdentity   = errors.New("unknown_ban_identity")
	ErrDuplicateOrder       = errors.New("duplicate_order")
	ErrWrongOrderSide       = errors.New("wrong_order_side")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
