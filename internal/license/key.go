package license

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// KeyPayload is the JSON document carried inside an activation key
type KeyPayload struct {
	ExpirationDate string `json:"expirationDate"`
	Timestamp      string `json:"timestamp"`
}

// GenerateKey encodes an activation key for expirationDate
func GenerateKey(expirationDate string) string {
	return generateKeyAt(expirationDate, time.Now())
}

func generateKeyAt(expirationDate string, now time.Time) string {
	data, _ := json.Marshal(KeyPayload{
		ExpirationDate: expirationDate,
		Timestamp:      FormatISO(now),
	})
	return base64.StdEncoding.EncodeToString(data)
}

// keyEncodings lists the base64 alphabets accepted when decoding, strictest first
var keyEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeKey reverses GenerateKey and parses the expiration date
func DecodeKey(key string) (KeyPayload, time.Time, error) {
	var payload KeyPayload

	key = strings.Join(strings.Fields(key), "")
	if key == "" {
		return payload, time.Time{}, fmt.Errorf("empty key")
	}

	var (
		raw []byte
		err error
	)
	for _, enc := range keyEncodings {
		if raw, err = enc.DecodeString(key); err == nil {
			break
		}
	}
	if err != nil {
		return payload, time.Time{}, fmt.Errorf("key is not base64: %w", err)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, time.Time{}, fmt.Errorf("key payload is not valid JSON: %w", err)
	}

	exp, err := ParseDate(payload.ExpirationDate)
	if err != nil {
		return payload, time.Time{}, fmt.Errorf("key expiration: %w", err)
	}
	return payload, exp, nil
}
