package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/fixoncall/fixoncall-client/sessions/redisstore"
	"github.com/fixoncall/fixoncall-client/users"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStoreTest(t *testing.T, options ...redisstore.Option) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store, err := redisstore.New(rdb, options...)
	require.NoError(t, err)
	return store, mr
}

func TestNewRequiresClient(t *testing.T) {
	_, err := redisstore.New(nil)
	require.Error(t, err)
}

func TestSetGetClear(t *testing.T) {
	store, mr := newRedisStoreTest(t)

	_, found, err := store.Get(sessions.TokenKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(sessions.TokenKey, "tok"))
	require.Equal(t, "tok", mustGet(t, mr, redisstore.DefaultPrefix+sessions.TokenKey))

	value, found, err := store.Get(sessions.TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", value)

	require.NoError(t, store.Clear(sessions.TokenKey))
	require.False(t, mr.Exists(redisstore.DefaultPrefix+sessions.TokenKey))
	require.NoError(t, store.Clear(sessions.TokenKey))
}

func TestPrefixAndTTL(t *testing.T) {
	store, mr := newRedisStoreTest(t, redisstore.WithPrefix("tenant-a:"), redisstore.WithTTL(time.Hour))

	require.NoError(t, store.Set(sessions.UserKey, "{}"))
	require.True(t, mr.Exists("tenant-a:user"))
	require.Equal(t, time.Hour, mr.TTL("tenant-a:user"))

	mr.FastForward(2 * time.Hour)
	_, found, err := store.Get(sessions.UserKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestUnavailableServer(t *testing.T) {
	store, mr := newRedisStoreTest(t, redisstore.WithOpTimeout(200*time.Millisecond))
	mr.Close()

	_, _, err := store.Get(sessions.TokenKey)
	require.Error(t, err)
	require.Error(t, store.Set(sessions.TokenKey, "tok"))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := redisstore.Connect(context.Background(), addr, "")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = redisstore.Connect(context.Background(), addr, "")
	require.Error(t, err)
}

func TestSessionSharedAcrossProcesses(t *testing.T) {
	storage, _ := newRedisStoreTest(t)
	user := users.User{ID: "9", Name: "Achieng", Email: "achieng@example.com", Role: users.RoleAdmin, Phone: "0700111222"}

	first, err := sessions.NewStore(storage)
	require.NoError(t, err)
	first.Login(user, "shared-token")

	second, err := sessions.NewStore(storage)
	require.NoError(t, err)
	second.Hydrate()
	require.Equal(t, first.Snapshot(), second.Snapshot())
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	value, err := mr.Get(key)
	require.NoError(t, err)
	return value
}
