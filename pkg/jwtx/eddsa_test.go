package jwtx_test

import (
	"encoding/pem"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/pkg/cryptox"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "claims-test"

func newTestSigner(t *testing.T, kid string) (jwtx.Signer, *jwtx.KeySet) {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	return signer, keyset
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer, keyset := newTestSigner(t, "test-key-eddsa")
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "test-key-eddsa", signer.KID())

	claims := jwtx.NewAccessClaims("01JEMPLOYEE", "e@example.com", exampleIssuer, 5*time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parsed, err := jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Email, parsed.Email)
	require.Equal(t, claims.Issuer, parsed.Issuer)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	signer, keyset := newTestSigner(t, "k1")

	token, err := signer.Sign(jwtx.NewAccessClaims("01J", "", exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset, "wrong-issuer").Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForExpiredToken(t *testing.T) {
	signer, keyset := newTestSigner(t, "k1")

	issued := time.Now().UTC().Add(-2 * time.Hour)
	token, err := signer.Sign(jwtx.NewAccessClaims("01J", "", exampleIssuer, time.Hour, issued))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	// A generous leeway accepts it again
	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).WithLeeway(2 * time.Hour).Verify(token)
	require.NoError(t, err)
}

func TestEdDSAVerifyFailsForMissingSubject(t *testing.T) {
	signer, keyset := newTestSigner(t, "k1")

	token, err := signer.Sign(jwtx.NewAccessClaims("", "", exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestEdDSAVerifyFailsForUnknownKey(t *testing.T) {
	signer1, _ := newTestSigner(t, "key1")
	_, keyset2 := newTestSigner(t, "key2")

	token, err := signer1.Sign(jwtx.NewAccessClaims("01J", "", exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset2, exampleIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestEdDSAVerifyFailsForTamperedToken(t *testing.T) {
	signer, keyset := newTestSigner(t, "k1")

	token, err := signer.Sign(jwtx.NewAccessClaims("01J", "", exampleIssuer, time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "AA"
	if tampered == token {
		tampered = token[:len(token)-2] + "BB"
	}
	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify(tampered)
	require.Error(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestEdDSAVerifyRejectsOtherAlgorithms(t *testing.T) {
	_, keyset := newTestSigner(t, "k1")

	claims := jwtx.NewAccessClaims("01J", "", exampleIssuer, time.Minute, time.Now().UTC())
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = "k1"
	token, err := tok.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer).Verify(token)
	require.Error(t, err)
}

func TestEdDSAValidateFailsForInvalidKey(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("test", []byte("not-a-pem-key"))
	require.ErrorContains(t, err, "no PEM block")

	rsaish := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})
	_, err = jwtx.NewSignerEdDSA("test", rsaish)
	require.ErrorContains(t, err, "want PKCS8")
}

func TestEdDSASigner_DerivesKIDWhenEmpty(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)
	require.Equal(t, jwtx.KeyID(signer.PublicKey()), signer.KID())
}
