package draft

import (
	"context"
	"testing"
	"time"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetCreatesOnce(t *testing.T) {
	s := NewStore(time.Hour, intake.StrictPreset(3), nil)

	d := s.Get("s1", enum.CategoryRoad)
	_, err := d.Photos.Add(context.Background(), intake.SourceUpload, []intake.File{
		{Name: "a.jpg", Data: testutil.PlainJPEG()},
	})
	require.NoError(t, err)

	again := s.Get("s1", enum.CategoryRoad)
	assert.Same(t, d, again)
	assert.Equal(t, 1, again.Photos.Len())
	assert.Equal(t, 3, again.Photos.Config().MaxFiles)

	other := s.Get("s1", enum.CategoryBridge)
	assert.NotSame(t, d, other)
	assert.Zero(t, other.Photos.Len())
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(time.Hour, intake.StrictPreset(3), nil)
	s.Get("s1", enum.CategoryRoad)
	s.Get("s1", enum.CategoryBridge)
	s.Get("s2", enum.CategoryRoad)

	s.Delete("s1", enum.CategoryRoad)
	_, ok := s.Lookup("s1", enum.CategoryRoad)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())

	s.DeleteSession("s1")
	assert.Equal(t, 1, s.Len())
	_, ok = s.Lookup("s2", enum.CategoryRoad)
	assert.True(t, ok)
}

func TestStore_Cleanup(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	s := NewStore(time.Hour, intake.StrictPreset(3), nil)
	s.now = func() time.Time { return now }

	s.Get("old", enum.CategoryRoad)
	now = now.Add(50 * time.Minute)
	s.Get("fresh", enum.CategoryRoad)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, s.Cleanup())
	_, ok := s.Lookup("old", enum.CategoryRoad)
	assert.False(t, ok)
	_, ok = s.Lookup("fresh", enum.CategoryRoad)
	assert.True(t, ok)
}

func TestStore_RunStopsWithContext(t *testing.T) {
	s := NewStore(10*time.Millisecond, intake.StrictPreset(1), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.Get("s", enum.CategoryRoad)
	testutil.RequireEventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond, "draft not expired")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
