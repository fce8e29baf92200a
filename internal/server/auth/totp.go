package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters: 6-digit codes over 30-second steps, one step of clock
// drift tolerated in either direction.
const (
	totpPeriod = 30
	totpSkew   = 1
	totpIssuer = "Toolly"
)

// GenerateTOTPSecret produces a fresh base32 shared secret together with its
// otpauth:// provisioning URL (rendered as a QR code by the client). The
// secret must not be persisted until the user has echoed back one valid code.
func GenerateTOTPSecret(accountName string) (secret, provisioningURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// CurrentTOTPCode returns the 6-digit code for the secret at time t.
func CurrentTOTPCode(secret string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, t, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}

// VerifyTOTPCode reports whether code is valid for secret at time t, within
// the configured skew window. A missing secret takes the same code path as a
// wrong code rather than branching early.
func VerifyTOTPCode(secret, code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return ok
}
