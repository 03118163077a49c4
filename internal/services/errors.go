package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies relay errors for callers and the HTTP layer
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindLimit         ErrorKind = "limit"
	KindResource      ErrorKind = "resource"
	KindAvailability  ErrorKind = "availability"
	KindAuthorization ErrorKind = "authorization"
)

// Validation errors reject a single request without touching state
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidNonce     = errors.New("invalid nonce")
	ErrRequestExpired   = errors.New("request expired")
	ErrGasLimitExceeded = errors.New("gas limit exceeded")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTier      = errors.New("invalid tier")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidDelay     = errors.New("invalid delay")
	ErrUnknownRole      = errors.New("unknown role")
)

// Limit errors reject the coverage step
var (
	ErrDailyLimitExceeded      = errors.New("daily limit exceeded")
	ErrLifetimeLimitExceeded   = errors.New("lifetime limit exceeded")
	ErrInsufficientPoolBalance = errors.New("insufficient pool balance")
)

// Resource errors reject registry operations
var (
	ErrInsufficientInitialBalance = errors.New("insufficient initial balance")
	ErrMustMaintainMinBalance     = errors.New("must maintain minimum balance")
	ErrAlreadyRegistered          = errors.New("relayer already registered")
	ErrNotRegistered              = errors.New("relayer not registered")
	ErrStillActive                = errors.New("relayer still active")
	ErrNoPendingTransfer          = errors.New("no pending role transfer")
	ErrTransferNotReady           = errors.New("role transfer not yet eligible")
)

// Availability errors surface conditions the caller must retry later
var (
	ErrFeedUnavailable      = errors.New("price feed unavailable")
	ErrStalePrice           = errors.New("stale price")
	ErrOracleNotInitialized = errors.New("oracle not initialized")
	ErrPaused               = errors.New("paused")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotActiveRelayer = errors.New("not an active relayer")
)

var sentinelKinds = map[error]ErrorKind{
	ErrInvalidSignature:           KindValidation,
	ErrInvalidNonce:               KindValidation,
	ErrRequestExpired:             KindValidation,
	ErrGasLimitExceeded:           KindValidation,
	ErrInvalidAmount:              KindValidation,
	ErrInvalidTier:                KindValidation,
	ErrInvalidAddress:             KindValidation,
	ErrInvalidDelay:               KindValidation,
	ErrUnknownRole:                KindValidation,
	ErrDailyLimitExceeded:         KindLimit,
	ErrLifetimeLimitExceeded:      KindLimit,
	ErrInsufficientPoolBalance:    KindLimit,
	ErrInsufficientInitialBalance: KindResource,
	ErrMustMaintainMinBalance:     KindResource,
	ErrAlreadyRegistered:          KindResource,
	ErrNotRegistered:              KindResource,
	ErrStillActive:                KindResource,
	ErrNoPendingTransfer:          KindResource,
	ErrTransferNotReady:           KindResource,
	ErrFeedUnavailable:            KindAvailability,
	ErrStalePrice:                 KindAvailability,
	ErrOracleNotInitialized:       KindAvailability,
	ErrPaused:                     KindAvailability,
	ErrUnauthorized:               KindAuthorization,
	ErrNotActiveRelayer:           KindAuthorization,
}

// RelayError is the structured error returned by every service operation
type RelayError struct {
	Kind   ErrorKind
	Op     string
	Fields map[string]string
	Err    error
}

func (e *RelayError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Fields[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// newRelayError wraps err with its kind and op context. kv is a list of
// alternating field names and values.
func newRelayError(op string, err error, kv ...string) *RelayError {
	var fields map[string]string
	if len(kv) > 1 {
		fields = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			fields[kv[i]] = kv[i+1]
		}
	}
	return &RelayError{
		Kind:   KindOf(err),
		Op:     op,
		Fields: fields,
		Err:    err,
	}
}

// KindOf returns the error class of err, or "" when err is not a relay error
func KindOf(err error) ErrorKind {
	var re *RelayError
	if errors.As(err, &re) && re.Kind != "" {
		return re.Kind
	}
	for sentinel, kind := range sentinelKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}

// Reason returns the sentinel message of a relay error, used in results
func Reason(err error) string {
	for sentinel := range sentinelKinds {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
