package domain

import "errors"

var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCampaignNotActive = errors.New("campaign not active")
	ErrDeadlinePassed    = errors.New("deadline passed")
	ErrTooEarly          = errors.New("too early")
	ErrAlreadyFinalized  = errors.New("already finalized")
	ErrNotSuccessful     = errors.New("campaign not successful")
	ErrNotFailed         = errors.New("campaign not failed")
	ErrAlreadyWithdrawn  = errors.New("already withdrawn")
	ErrNothingToRefund   = errors.New("nothing to refund")
)
