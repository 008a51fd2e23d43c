package verify

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ecobot-api/internal/infrastructure/sns"
	"github.com/ecobot-api/internal/pkg/id"
)

const offlineCodeTTL = 10 * time.Minute

type issuedCode struct {
	code     string
	issuedAt time.Time
}

// Offline generates and validates codes locally, keyed by phone number.
// Codes live for 10 minutes; a mismatching check keeps the entry so the
// user may retry within the TTL.
type Offline struct {
	mu     sync.Mutex
	codes  map[string]issuedCode
	sender sns.SMSSender // nil means codes are never delivered anywhere
	static string        // non-empty pins every issued code (explicit opt-in)
	nowF   func() time.Time
}

// NewOffline returns the offline provider. sender may be nil; staticCode
// must be empty outside local development — it is only honored here, never
// by the networked variant, and never implicitly.
func NewOffline(sender sns.SMSSender, staticCode string) *Offline {
	return &Offline{
		codes:  make(map[string]issuedCode),
		sender: sender,
		static: staticCode,
		nowF:   time.Now,
	}
}

func (o *Offline) Start(ctx context.Context, phone string) (string, error) {
	code := o.static
	if code == "" {
		var err error
		code, err = generateCode()
		if err != nil {
			return "", err
		}
	}

	o.mu.Lock()
	o.codes[phone] = issuedCode{code: code, issuedAt: o.nowF()}
	o.mu.Unlock()

	if o.sender != nil {
		if err := o.sender.SendSMS(ctx, phone, "Your verification code: "+code); err != nil {
			slog.Warn("offline provider: SMS delivery failed", "err", err)
		}
	}
	return id.New(), nil
}

func (o *Offline) Check(ctx context.Context, phone, code string) (CheckResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	issued, ok := o.codes[phone]
	if !ok {
		return Rejected, nil
	}
	if o.nowF().Sub(issued.issuedAt) > offlineCodeTTL {
		delete(o.codes, phone)
		return Expired, nil
	}
	if subtle.ConstantTimeCompare([]byte(issued.code), []byte(code)) == 1 {
		delete(o.codes, phone)
		return Approved, nil
	}
	return Rejected, nil
}

// generateCode returns a 6-digit numeric code using crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
