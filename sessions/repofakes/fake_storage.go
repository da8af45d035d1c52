package fakesessionrepo

import (
	"errors"
	"sync"

	"github.com/fixoncall/fixoncall-client/sessions"
)

var _ sessions.Storage = (*FakeStorage)(nil)

// ErrInjected is returned by operations the test has asked to fail.
var ErrInjected = errors.New("injected storage failure")

type FakeStorage struct {
	values map[string]string
	fail   map[string]bool // operation name ("get", "set", "clear") -> fail
	failOn map[string]bool // operation + ":" + key -> fail
	calls  map[string]int
	lock   sync.RWMutex
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		values: make(map[string]string),
		fail:   make(map[string]bool),
		failOn: make(map[string]bool),
		calls:  make(map[string]int),
	}
}

func (fs *FakeStorage) Get(key string) (string, bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.calls["get"]++
	if fs.fail["get"] || fs.failOn["get:"+key] {
		return "", false, ErrInjected
	}
	value, ok := fs.values[key]
	return value, ok, nil
}

func (fs *FakeStorage) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.calls["set"]++
	if fs.fail["set"] || fs.failOn["set:"+key] {
		return ErrInjected
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeStorage) Clear(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.calls["clear"]++
	if fs.fail["clear"] || fs.failOn["clear:"+key] {
		return ErrInjected
	}
	delete(fs.values, key)
	return nil
}

// Fail makes every later call of operation return ErrInjected until reset with false.
func (fs *FakeStorage) Fail(operation string, fail bool) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.fail[operation] = fail
}

// FailKey is Fail restricted to one key.
func (fs *FakeStorage) FailKey(operation, key string, fail bool) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.failOn[operation+":"+key] = fail
}

// Calls returns how many times operation has been invoked.
func (fs *FakeStorage) Calls(operation string) int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.calls[operation]
}

// Snapshot returns a copy of everything stored.
func (fs *FakeStorage) Snapshot() map[string]string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	out := make(map[string]string, len(fs.values))
	for k, v := range fs.values {
		out[k] = v
	}
	return out
}
