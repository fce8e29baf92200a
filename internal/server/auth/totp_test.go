package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateTOTPSecret(t *testing.T) {
	t.Parallel()

	secret, url, err := GenerateTOTPSecret("alice")
	if err != nil {
		t.Fatalf("GenerateTOTPSecret error: %v", err)
	}
	if secret == "" {
		t.Fatal("empty secret")
	}
	if !strings.HasPrefix(url, "otpauth://totp/") || !strings.Contains(url, "alice") {
		t.Fatalf("unexpected provisioning URL: %q", url)
	}

	other, _, err := GenerateTOTPSecret("alice")
	if err != nil {
		t.Fatalf("GenerateTOTPSecret error: %v", err)
	}
	if other == secret {
		t.Fatal("two generated secrets are identical")
	}
}

func TestVerifyTOTPCode_WindowTolerance(t *testing.T) {
	t.Parallel()

	secret, _, err := GenerateTOTPSecret("alice")
	if err != nil {
		t.Fatalf("GenerateTOTPSecret error: %v", err)
	}

	// Align to the middle of a step so ±30s stays within one step boundary.
	now := time.Unix(1700000015, 0)

	code, err := CurrentTOTPCode(secret, now)
	if err != nil {
		t.Fatalf("CurrentTOTPCode error: %v", err)
	}

	if !VerifyTOTPCode(secret, code, now) {
		t.Fatal("code must verify at its own time")
	}
	if !VerifyTOTPCode(secret, code, now.Add(30*time.Second)) {
		t.Fatal("code must verify one step late")
	}
	if !VerifyTOTPCode(secret, code, now.Add(-30*time.Second)) {
		t.Fatal("code must verify one step early")
	}
	if VerifyTOTPCode(secret, code, now.Add(90*time.Second)) {
		t.Fatal("code must not verify three steps away")
	}
	if VerifyTOTPCode(secret, code, now.Add(-90*time.Second)) {
		t.Fatal("code must not verify three steps away")
	}
}

func TestVerifyTOTPCode_WrongCode(t *testing.T) {
	t.Parallel()

	secret, _, err := GenerateTOTPSecret("alice")
	if err != nil {
		t.Fatalf("GenerateTOTPSecret error: %v", err)
	}

	now := time.Now()
	code, err := CurrentTOTPCode(secret, now)
	if err != nil {
		t.Fatalf("CurrentTOTPCode error: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if VerifyTOTPCode(secret, wrong, now) {
		t.Fatal("wrong code verified")
	}
}

func TestVerifyTOTPCode_NoSecret(t *testing.T) {
	t.Parallel()

	if VerifyTOTPCode("", "123456", time.Now()) {
		t.Fatal("verification with no secret must fail")
	}
}
