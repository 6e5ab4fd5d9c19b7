package token

import (
    "strings"
    "testing"
    "time"
)

const testSecret = "unit-test-secret"

func encodeOrFail(t *testing.T, payload Claims, ttl time.Duration) string {
    t.Helper()
    tok, err := Encode(payload, testSecret, "HS256", "atelier-artist-api", "atelier-artist-webapp", ttl)
    if err != nil {
        t.Fatalf("Encode failed: %v", err)
    }
    return tok
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
    payload := Claims{"user_id": uint64(7), "email": "fan@example.com", "role": "user"}
    tok := encodeOrFail(t, payload, time.Hour)

    if parts := strings.Split(tok, "."); len(parts) != 3 {
        t.Fatalf("expected 3 segments, got %d", len(parts))
    }

    claims, ok := Decode(tok, testSecret)
    if !ok {
        t.Fatal("Decode rejected a freshly issued token")
    }
    if got, _ := claims["user_id"].(float64); uint64(got) != 7 {
        t.Errorf("user_id = %v, want 7", claims["user_id"])
    }
    if claims["email"] != "fan@example.com" {
        t.Errorf("email = %v", claims["email"])
    }
    if claims["role"] != "user" {
        t.Errorf("role = %v", claims["role"])
    }
    if claims["iss"] != "atelier-artist-api" {
        t.Errorf("iss = %v", claims["iss"])
    }
    if claims["aud"] != "atelier-artist-webapp" {
        t.Errorf("aud = %v", claims["aud"])
    }

    iat, iatOK := claims["iat"].(float64)
    exp, expOK := claims["exp"].(float64)
    if !iatOK || !expOK {
        t.Fatalf("iat/exp missing or not numeric: iat=%v exp=%v", claims["iat"], claims["exp"])
    }
    if int64(exp)-int64(iat) != 3600 {
        t.Errorf("exp-iat = %d, want 3600", int64(exp)-int64(iat))
    }
}

func TestReservedClaimsWin(t *testing.T) {
    // A caller must not be able to smuggle its own exp or iss.
    payload := Claims{"exp": int64(1), "iss": "evil", "user_id": uint64(1)}
    tok := encodeOrFail(t, payload, time.Hour)

    claims, ok := Decode(tok, testSecret)
    if !ok {
        t.Fatal("Decode rejected token")
    }
    if claims["iss"] != "atelier-artist-api" {
        t.Errorf("iss = %v, caller value should be overwritten", claims["iss"])
    }
    if exp, _ := claims["exp"].(float64); int64(exp) <= time.Now().UTC().Unix() {
        t.Errorf("exp = %v, caller value should be overwritten", claims["exp"])
    }
}

func TestTamperedTokenRejected(t *testing.T) {
    tok := encodeOrFail(t, Claims{"user_id": uint64(42)}, time.Hour)

    flip := func(s string, i int) string {
        b := []byte(s)
        if b[i] == 'A' {
            b[i] = 'B'
        } else {
            b[i] = 'A'
        }
        return string(b)
    }

    parts := strings.Split(tok, ".")
    for seg := 0; seg < 3; seg++ {
        for _, pos := range []int{0, len(parts[seg]) / 2, len(parts[seg]) - 1} {
            mutated := make([]string, 3)
            copy(mutated, parts)
            mutated[seg] = flip(parts[seg], pos)
            if _, ok := Decode(strings.Join(mutated, "."), testSecret); ok {
                t.Errorf("tampered token accepted (segment %d, pos %d)", seg, pos)
            }
        }
    }
}

func TestWrongSecretRejected(t *testing.T) {
    tok := encodeOrFail(t, Claims{"user_id": uint64(1)}, time.Hour)
    if _, ok := Decode(tok, "a-different-secret"); ok {
        t.Error("token verified under the wrong secret")
    }
}

func TestExpiredTokenRejected(t *testing.T) {
    tok := encodeOrFail(t, Claims{"user_id": uint64(1)}, -time.Second)
    if _, ok := Decode(tok, testSecret); ok {
        t.Error("expired token accepted")
    }
}

func TestMalformedTokensRejected(t *testing.T) {
    for _, tok := range []string{
        "",
        "onlyonesegment",
        "two.segments",
        "a.b.c.d",
        "!!!.???.***",
    } {
        if _, ok := Decode(tok, testSecret); ok {
            t.Errorf("malformed token %q accepted", tok)
        }
    }
}
