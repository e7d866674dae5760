//go:build unix

package lock

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFileLock_TryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.lock")

	first := NewFileLock(path)
	if err := first.TryLock(); err != nil {
		t.Fatalf("first TryLock: %v", err)
	}

	second := NewFileLock(path)
	if err := second.TryLock(); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := second.TryLock(); err != nil {
		t.Fatalf("TryLock after release: %v", err)
	}
	if err := second.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestFileLock_DoubleAcquire(t *testing.T) {
	fl := NewFileLock(filepath.Join(t.TempDir(), "workspace.lock"))
	if err := fl.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer fl.Unlock()

	if err := fl.Lock(); err == nil {
		t.Fatal("expected error when locking an already held FileLock")
	}
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	fl := NewFileLock(filepath.Join(t.TempDir(), "workspace.lock"))
	if err := fl.Unlock(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestFileLock_Serializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.lock")
	var inside, maxInside int64

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fl := NewFileLock(path)
			if err := fl.Lock(); err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			n := atomic.AddInt64(&inside, 1)
			for {
				m := atomic.LoadInt64(&maxInside)
				if n <= m || atomic.CompareAndSwapInt64(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt64(&inside, -1)
			if err := fl.Unlock(); err != nil {
				t.Errorf("Unlock: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder at a time, saw %d", maxInside)
	}
}
