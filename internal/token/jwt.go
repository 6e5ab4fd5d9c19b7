// Package token implements the compact signed token format used for session
// credentials: base64url(header).base64url(payload).base64url(signature),
// signed with HMAC-SHA256 over the literal header.payload concatenation.
// The codec is deliberately self-contained; tokens are stateless and carry
// their own expiry, so there is no server-side session or revocation state.
package token

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/json"
    "strings"
    "time"
)

// Claims is a decoded token payload.  JSON numbers decode as float64.
type Claims map[string]any

type header struct {
    Alg string `json:"alg"`
    Typ string `json:"typ"`
}

// Encode builds and signs a token.  The caller payload is merged with the
// reserved claims iat, exp, iss and aud; reserved claims always win over
// caller-supplied keys of the same name.  The signature covers the exact
// encoded header and payload segments that are transmitted.
func Encode(payload Claims, secret, alg, issuer, audience string, ttl time.Duration) (string, error) {
    now := time.Now().UTC().Unix()

    claims := make(Claims, len(payload)+4)
    for k, v := range payload {
        claims[k] = v
    }
    claims["iat"] = now
    claims["exp"] = now + int64(ttl/time.Second)
    claims["iss"] = issuer
    claims["aud"] = audience

    headerJSON, err := json.Marshal(header{Alg: alg, Typ: "JWT"})
    if err != nil {
        return "", err
    }
    payloadJSON, err := json.Marshal(claims)
    if err != nil {
        return "", err
    }

    enc := base64.RawURLEncoding
    signingInput := enc.EncodeToString(headerJSON) + "." + enc.EncodeToString(payloadJSON)
    return signingInput + "." + enc.EncodeToString(sign(signingInput, secret)), nil
}

// Decode verifies a token and returns its payload.  It reports ok=false when
// the token does not have exactly three segments, the signature does not
// match, or the exp claim (if present) is in the past.  It never panics and
// never returns an error to the caller; an invalid token is simply rejected.
func Decode(tok, secret string) (Claims, bool) {
    parts := strings.Split(tok, ".")
    if len(parts) != 3 {
        return nil, false
    }

    // Recompute the signature over the literal transmitted segments.  The
    // payload is never re-serialized before verification: JSON key order is
    // not canonical and re-encoding could change the signed bytes.
    expected := base64.RawURLEncoding.EncodeToString(sign(parts[0]+"."+parts[1], secret))
    if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
        return nil, false
    }

    payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
    if err != nil {
        return nil, false
    }
    var claims Claims
    if err := json.Unmarshal(payloadJSON, &claims); err != nil {
        return nil, false
    }

    if exp, ok := claims["exp"].(float64); ok && int64(exp) < time.Now().UTC().Unix() {
        return nil, false
    }
    return claims, true
}

func sign(input, secret string) []byte {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(input))
    return mac.Sum(nil)
}
