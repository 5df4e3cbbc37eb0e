package logic

import "errors"

// Business errors. Handlers map these onto HTTP statuses; anything else
// is treated as an internal failure.
var (
	// donation claim validation
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidDonorWallet = errors.New("invalid donor wallet address")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDuplicateSignature = errors.New("transaction already recorded")
	ErrDonationNotFound   = errors.New("donation not found")

	// project
	ErrProjectNotFound = errors.New("project not found or inactive")
	ErrNameRequired    = errors.New("name and wallet address are required")
	ErrInvalidWallet   = errors.New("invalid solana wallet address")
	ErrWalletTaken     = errors.New("this wallet address already has a project")
)
