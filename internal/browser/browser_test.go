package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitFor_ReadyAfterPolls(t *testing.T) {
	calls := 0
	err := WaitFor(context.Background(), time.Second, 5*time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitFor_ErrorsAreNotReady(t *testing.T) {
	calls := 0
	err := WaitFor(context.Background(), time.Second, 5*time.Millisecond, func(context.Context) (bool, error) {
		calls++
		if calls == 1 {
			return true, errors.New("execution context destroyed")
		}
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWaitFor_Timeout(t *testing.T) {
	err := WaitFor(context.Background(), 30*time.Millisecond, 5*time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSettleTimeout))
}

func TestWaitFor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitFor(ctx, time.Second, 5*time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSettleTimeout))
	assert.Contains(t, err.Error(), "wait canceled")
}

func TestSleepCtx(t *testing.T) {
	assert.NoError(t, sleepCtx(context.Background(), 0))
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, sleepCtx(ctx, time.Hour))
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.defaults()
	assert.Equal(t, 10*time.Second, c.SettleTimeout)
	assert.Equal(t, 250*time.Millisecond, c.PollInterval)
	assert.Zero(t, c.MinSettle)
}

func TestDecodeListItems(t *testing.T) {
	raw := `[{"linkTitle":"Celeste","linkText":"Celeste","href":"https://howlongtobeat.com/game/42818","text":"Celeste\nMain Story 8 Hours","imageUrl":"https://img/celeste.jpg"}]`
	items, err := decodeListItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Celeste", items[0].LinkTitle)
	assert.Equal(t, "https://howlongtobeat.com/game/42818", items[0].Href)
	assert.Contains(t, items[0].Text, "Main Story")

	_, err = decodeListItems("not json")
	assert.Error(t, err)
}

func TestDecodeProfile(t *testing.T) {
	p, err := decodeProfile(`{"title":"Hades","imageUrl":"https://img/hades.jpg"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hades", p.Title)
	assert.Equal(t, "https://img/hades.jpg", p.ImageURL)

	_, err = decodeProfile("")
	assert.Error(t, err)
}
