package drop

import "errors"

// malformed context errors
var (
	ErrUnsupportedVersion     = errors.New("unsupported context version")
	ErrMalformedOfferedItem   = errors.New("malformed offered item")
	ErrUnsupportedSubstandard = errors.New("unsupported substandard")
	ErrContextTooShort        = errors.New("context too short")
)

// eligibility errors
var (
	ErrStageNotActive         = errors.New("stage not active")
	ErrInvalidProof           = errors.New("invalid proof")
	ErrSignatureAlreadyUsed   = errors.New("signature already used")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrFeeRecipientNotAllowed = errors.New("fee recipient not allowed")
	ErrPayerNotAllowed        = errors.New("payer not allowed")
	ErrNotAllowedCaller       = errors.New("caller not allowed")
)

// capacity errors
var (
	ErrExceedsWalletCap    = errors.New("exceeds max mintable per wallet")
	ErrExceedsGlobalSupply = errors.New("exceeds max supply")
	ErrExceedsStageSupply  = errors.New("exceeds max supply for stage")
)

// configuration errors
var (
	ErrPayoutsNotConfigured = errors.New("creator payouts not configured")
	ErrNullFeeRecipient     = errors.New("fee recipient is the zero address")
	ErrInvalidFeeBps        = errors.New("fee basis points exceed 10000")
	ErrInvalidPayouts       = errors.New("invalid creator payouts")
)

// access set errors
var (
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrEntryNotPresent = errors.New("entry not present")
)

// ErrUnsupportedOperation rejects a read op outside the closed enumeration
var ErrUnsupportedOperation = errors.New("unsupported read operation")
