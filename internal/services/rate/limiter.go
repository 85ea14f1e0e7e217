package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const submissionWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles tribute and photo submissions per client IP. The site is
// open to anonymous visitors, so the IP is the only identity to count on.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowSubmission counts one submission attempt. When the window is over
// budget the attempt is refused along with how long to wait.
func (l *Limiter) AllowSubmission(ctx context.Context, ip string) (int64, bool, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return 0, false, fmt.Errorf("invalid client ip")
	}
	if l.store == nil || l.perMinute == 0 {
		return 0, true, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, submissionKey(ip), submissionWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func submissionKey(ip string) string {
	return "rate:submissions:min:" + ip
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
