package notify

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(func(ev ItemRated) { got = append(got, "first:"+ev.Key) })
	b.Subscribe(func(ev ItemRated) { got = append(got, "second:"+ev.Key) })

	b.Publish(context.Background(), ItemRated{Key: "m1_a", Quality: 5})

	assert.Equal(t, []string{"first:m1_a", "second:m1_a"}, got)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	cancel := b.Subscribe(func(ItemRated) { calls++ })

	b.Publish(context.Background(), ItemRated{Key: "a"})
	cancel()
	cancel()
	b.Publish(context.Background(), ItemRated{Key: "b"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Len())
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { b.Publish(context.Background(), ItemRated{}) })
}

type recordingForwarder struct {
	got []ItemRated
	err error
}

func (r *recordingForwarder) Publish(_ context.Context, ev ItemRated) error {
	r.got = append(r.got, ev)
	return r.err
}

func TestForwarder(t *testing.T) {
	fw := &recordingForwarder{err: errors.New("down")}
	b := New(WithForwarder(fw))
	delivered := false
	b.Subscribe(func(ItemRated) { delivered = true })

	b.Publish(context.Background(), ItemRated{Key: "a", Quality: 3})

	assert.True(t, delivered, "local delivery does not depend on forwarder")
	require.Len(t, fw.got, 1)
	assert.Equal(t, "a", fw.got[0].Key)
}

func TestNewRedisChannelValidation(t *testing.T) {
	_, err := NewRedisChannel(nil, "drill", nil)
	assert.Error(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	_, err = NewRedisChannel(rdb, "", nil)
	assert.Error(t, err)
}

func TestRedisChannelRoundTrip(t *testing.T) {
	addr := os.Getenv("DRILL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DRILL_TEST_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()

	ch, err := NewRedisChannel(rdb, "drill-test-notify", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan ItemRated, 1)
	require.NoError(t, ch.Listen(ctx, func(ev ItemRated) { got <- ev }))
	require.NoError(t, ch.Publish(ctx, ItemRated{Key: "m2_warmup_1", Quality: 4}))

	select {
	case ev := <-got:
		assert.Equal(t, "m2_warmup_1", ev.Key)
		assert.Equal(t, 4, ev.Quality)
	case <-ctx.Done():
		t.Fatal("timed out waiting for notification")
	}
}
