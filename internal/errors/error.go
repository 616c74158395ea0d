package errors

import "github.com/pkg/errors"

// Error taxonomy for the email integration layer. Categories chain to
// ErrEmailIntegration so errors.Is walks the whole hierarchy; adapters must
// translate every vendor fault into one of these before it crosses the
// provider contract.
var (
	ErrEmailIntegration = errors.New("email integration error")

	// auth errors
	ErrAuth               = errors.Wrap(ErrEmailIntegration, "authentication error")
	ErrInvalidAccessToken = errors.Wrap(ErrAuth, "access token is invalid or expired")
	ErrTokenRefresh       = errors.Wrap(ErrAuth, "token refresh is not supported by this layer")

	// provider errors
	ErrProvider            = errors.Wrap(ErrEmailIntegration, "email provider error")
	ErrGmailAPI            = errors.Wrap(ErrProvider, "gmail service error")
	ErrOutlookAPI          = errors.Wrap(ErrProvider, "outlook service error")
	ErrIMAPAPI             = errors.Wrap(ErrProvider, "imap service error")
	ErrUnsupportedProvider = errors.Wrap(ErrProvider, "unsupported provider")
	ErrProviderMismatch    = errors.Wrap(ErrProvider, "cursor was issued by a different provider")

	// attachment errors
	ErrAttachment         = errors.Wrap(ErrEmailIntegration, "attachment error")
	ErrAttachmentTooLarge = errors.Wrap(ErrAttachment, "attachment size exceeds allowed limit")

	// network errors
	ErrNetwork        = errors.Wrap(ErrEmailIntegration, "network error")
	ErrNetworkTimeout = errors.Wrap(ErrNetwork, "network timeout")

	// filter errors
	ErrFilter        = errors.Wrap(ErrEmailIntegration, "email filter error")
	ErrInvalidFilter = errors.Wrap(ErrFilter, "invalid email filter configuration")
)

// InvalidAccessToken annotates ErrInvalidAccessToken with call-site detail.
func InvalidAccessToken(msg string) error {
	return errors.WithMessage(ErrInvalidAccessToken, msg)
}

func UnsupportedProvider(name string) error {
	return errors.WithMessagef(ErrUnsupportedProvider, "provider %q is not registered", name)
}

func ProviderMismatch(expected, got string) error {
	return errors.WithMessagef(ErrProviderMismatch, "expected %s, got %s", expected, got)
}

// MalformedCursor covers cursors that were not produced by any adapter.
func MalformedCursor() error {
	return errors.WithMessage(ErrProvider, "pagination cursor is malformed")
}

func AttachmentTooLarge(sizeBytes, maxBytes int64) error {
	return errors.WithMessagef(ErrAttachmentTooLarge, "%d bytes exceeds the %d byte ceiling", sizeBytes, maxBytes)
}

func InvalidFilter(msg string) error {
	return errors.WithMessage(ErrInvalidFilter, msg)
}

// GmailAPI flattens a vendor fault into the taxonomy. The vendor error is
// reduced to its message so no vendor type leaks across the boundary.
func GmailAPI(err error) error {
	if err == nil {
		return ErrGmailAPI
	}
	return errors.WithMessage(ErrGmailAPI, err.Error())
}

func OutlookAPI(msg string) error {
	return errors.WithMessage(ErrOutlookAPI, msg)
}

func IMAPAPI(err error) error {
	if err == nil {
		return ErrIMAPAPI
	}
	return errors.WithMessage(ErrIMAPAPI, err.Error())
}

func NetworkTimeout(op string) error {
	return errors.WithMessagef(ErrNetworkTimeout, "%s timed out", op)
}
