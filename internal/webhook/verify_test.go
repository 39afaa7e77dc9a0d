package webhook

import "testing"

func TestSignAndVerify(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"type":"user.created"}`)

	sig := Sign(secret, body)

	if !Verify(secret, body, sig) {
		t.Error("valid signature rejected")
	}
	if Verify(secret, []byte(`{"type":"tampered"}`), sig) {
		t.Error("signature accepted for tampered body")
	}
	if Verify("other-secret", body, sig) {
		t.Error("signature accepted under wrong secret")
	}
	if Verify(secret, body, "not-hex") {
		t.Error("malformed signature accepted")
	}
	if Verify(secret, body, "") {
		t.Error("empty signature accepted")
	}
}
