package redisstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps strings in a map and pages SCAN two keys at a time.
type fakeRedis struct {
	data    map[string][]byte
	failGet error
	failSet error
	closed  bool
	msets   int
}

func newFake() *fakeRedis { return &fakeRedis{data: map[string][]byte{}} }

func toBytes(v interface{}) []byte {
	switch x := v.(type) {
	case []byte:
		return append([]byte(nil), x...)
	case string:
		return []byte(x)
	}
	panic("unexpected value type")
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.data[key] = toBytes(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) MSet(_ context.Context, values ...interface{}) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.msets++
	for i := 0; i+1 < len(values); i += 2 {
		f.data[values[i].(string)] = toBytes(values[i+1])
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var all []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			all = append(all, k)
		}
	}
	sort.Strings(all)

	start := int(cursor)
	if start > len(all) {
		start = len(all)
	}
	end := start + 2
	if end >= len(all) {
		return redis.NewScanCmdResult(all[start:], 0, nil)
	}
	return redis.NewScanCmdResult(all[start:end], uint64(end), nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestStore_GetSetUsesPrefix(t *testing.T) {
	f := newFake()
	s := New(f, "qj/")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "lj_jobs_v1", []byte(`[]`)))
	assert.Contains(t, f.data, "qj/lj_jobs_v1")

	v, err := s.Get(ctx, "lj_jobs_v1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestStore_GetMissReturnsNil(t *testing.T) {
	s := New(newFake(), "qj/")

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStore_GetErrorWrapped(t *testing.T) {
	f := newFake()
	f.failGet = errors.New("i/o timeout")
	s := New(f, "")

	_, err := s.Get(context.Background(), "k")
	require.ErrorIs(t, err, f.failGet)
}

func TestStore_SetErrorWrapped(t *testing.T) {
	f := newFake()
	f.failSet = errors.New("READONLY")
	s := New(f, "")

	err := s.Set(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, f.failSet)

	err = s.SetMany(context.Background(), map[string][]byte{"k": []byte("v")})
	require.ErrorIs(t, err, f.failSet)
}

func TestStore_SetManySingleMSet(t *testing.T) {
	f := newFake()
	s := New(f, "p:")
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	require.NoError(t, s.SetMany(ctx, nil))

	assert.Equal(t, 1, f.msets)
	assert.Equal(t, []byte("1"), f.data["p:a"])
	assert.Equal(t, []byte("2"), f.data["p:b"])
}

func TestStore_ListAndClearOnlyTouchPrefix(t *testing.T) {
	f := newFake()
	f.data["other:x"] = []byte("keep")
	s := New(f, "p:")
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Set(ctx, k, []byte(k)))
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, []byte("c"), all["c"])
	assert.NotContains(t, all, "other:x")

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, map[string][]byte{"other:x": []byte("keep")}, f.data)
}

func TestStore_DeleteAndClose(t *testing.T) {
	f := newFake()
	s := New(f, "p:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Empty(t, f.data)

	require.NoError(t, s.Close())
	assert.True(t, f.closed)
}
