package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	// CheckRateLimit short-circuits in test/development environments.
	t.Setenv("APP_ENV", "production")

	return mr, rdb
}

func TestCheckRateLimit_AllowsUpToLimit(t *testing.T) {
	_, rdb := setupRateLimitRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be within the limit", i+1)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be rejected")
}

func TestCheckRateLimit_IsolatesResourcesAndIdentities(t *testing.T) {
	_, rdb := setupRateLimitRedis(t)
	ctx := context.Background()

	allowed, err := CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Different resource, same client: separate counter.
	allowed, err = CheckRateLimit(ctx, rdb, "submit_idea", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Same resource, different client: separate counter.
	allowed, err = CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_WindowResets(t *testing.T) {
	mr, rdb := setupRateLimitRedis(t)
	ctx := context.Background()

	allowed, err := CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)

	allowed, err = CheckRateLimit(ctx, rdb, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "counter should reset after the window expires")
}

func TestCheckRateLimit_DisabledInTestEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	allowed, err := CheckRateLimit(context.Background(), nil, "vote", "ip:203.0.113.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	_, rdb := setupRateLimitRedis(t)

	app := fiber.New()
	app.Post("/vote", RateLimit(rdb, 2, time.Minute, "vote"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/vote", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/vote", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit_KeysByIdentityWhenResolved(t *testing.T) {
	_, rdb := setupRateLimitRedis(t)

	identity := "a"
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identityID", identity)
		return c.Next()
	})
	app.Post("/vote", RateLimit(rdb, 1, time.Minute, "vote"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/vote", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/vote", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// A different identity from the same IP has its own budget.
	identity = "b"
	resp, err = app.Test(httptest.NewRequest("POST", "/vote", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimitWithPolicy_FailOpenAndClosed(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	// Redis pointing at a closed port makes every check fail.
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })

	app := fiber.New()
	app.Get("/open", RateLimitWithPolicy(rdb, 1, time.Minute, FailOpen, "open"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/closed", RateLimitWithPolicy(rdb, 1, time.Minute, FailClosed, "closed"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Redis dial retries against the closed port can exceed app.Test's
	// default 1s timeout, so allow extra time.
	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil), 30000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/closed", nil), 30000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
