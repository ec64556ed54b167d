// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginMaxAttempts  = int64(5)
	loginWindow       = 15 * time.Minute
	signupMaxAttempts = int64(10)
	signupWindow      = time.Hour
)

// Limiter throttles credential attempts per source to slow down online
// guessing.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// AllowLogin checks whether another login attempt from this ip/email pair is
// allowed and returns the remaining budget.
func (r *Limiter) AllowLogin(ctx context.Context, ip, email string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	// Start the window on the first attempt
	if count == 1 {
		r.client.Expire(ctx, key, loginWindow)
	}

	remaining := loginMaxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= loginMaxAttempts, remaining, nil
}

// ResetLogin clears the attempt counter after a successful login.
func (r *Limiter) ResetLogin(ctx context.Context, ip, email string) error {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)
	return r.client.Del(ctx, key).Err()
}

// AllowSignup checks whether another signup from this ip is allowed.
func (r *Limiter) AllowSignup(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:signup:%s", ip)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment signup attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, signupWindow)
	}

	return count <= signupMaxAttempts, nil
}
