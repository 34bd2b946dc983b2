package keyboard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_deliversInOrder(t *testing.T) {
	var actual []Key
	instance := newDispatcher(func(k Key) {
		actual = append(actual, k)
	})

	assert.True(t, instance.offer(KeyVolumeUp))
	assert.True(t, instance.offer(KeyVolumeUp))
	assert.True(t, instance.offer(KeyMute))
	assert.True(t, instance.offer(KeyVolumeDown))
	instance.close()

	assert.Equal(t, []Key{KeyVolumeUp, KeyVolumeUp, KeyMute, KeyVolumeDown}, actual)
}

func TestDispatcher_dropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	var handling sync.WaitGroup
	handling.Add(1)
	var once sync.Once
	delivered := 0
	instance := newDispatcher(func(Key) {
		once.Do(handling.Done)
		<-release
		delivered++
	})

	assert.True(t, instance.offer(KeyVolumeUp))
	handling.Wait()
	for i := 0; i < QueueSize; i++ {
		assert.True(t, instance.offer(KeyVolumeUp))
	}
	assert.False(t, instance.offer(KeyVolumeUp))

	close(release)
	instance.close()
	assert.Equal(t, QueueSize+1, delivered)
}

func TestDispatcher_survivesPanickingHandler(t *testing.T) {
	var actual []Key
	instance := newDispatcher(func(k Key) {
		if k == KeyMute {
			panic("boom")
		}
		actual = append(actual, k)
	})

	instance.offer(KeyMute)
	instance.offer(KeyVolumeUp)
	instance.close()

	assert.Equal(t, []Key{KeyVolumeUp}, actual)
}

func TestDispatcher_dropsAfterClose(t *testing.T) {
	var actual []Key
	instance := newDispatcher(func(k Key) {
		actual = append(actual, k)
	})

	assert.True(t, instance.offer(KeyVolumeUp))
	instance.close()

	assert.NotPanics(t, func() {
		assert.False(t, instance.offer(KeyVolumeDown))
	})
	assert.NotPanics(t, instance.close)
	assert.Equal(t, []Key{KeyVolumeUp}, actual)
}
