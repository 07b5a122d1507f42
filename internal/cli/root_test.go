package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(""))
	cmd := NewRootCommand(a, kv, 0)
	require.NotNil(t, cmd)
	assert.Equal(t, "quickjobs", cmd.Use)

	link := cmd.Flags().Lookup("link")
	require.NotNil(t, link)
	assert.Empty(t, link.DefValue)
}

func TestCommandPresence(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(""))
	cmd := NewRootCommand(a, kv, 0)

	for _, name := range []string{"list", "show", "version", "export", "reset"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestListCommandFlags(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(""))
	list, _, err := NewRootCommand(a, kv, 0).Find([]string{"list"})
	require.NoError(t, err)

	q := list.Flags().Lookup("query")
	require.NotNil(t, q)
	assert.Equal(t, "q", q.Shorthand)

	sort := list.Flags().Lookup("sort")
	require.NotNil(t, sort)
	assert.Equal(t, "newest", sort.DefValue)
}

func TestListCommand(t *testing.T) {
	a, kv, out := newTestEnv(t, strings.NewReader(""))
	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"list", "--category", "plumbing", "-q", "sink"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `category: Plumbing · search: "sink" · sort: newest`)
	assert.Contains(t, out.String(), "[sj2] Replace kitchen sink")
	assert.NotContains(t, out.String(), "[sj1]")
}

func TestListCommand_BadInput(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(""))

	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"list", "--sort=cheapest"})
	require.ErrorIs(t, cmd.Execute(), common.ErrUnknownSortKey)

	cmd = NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"list", "--category=Gardening"})
	require.Error(t, cmd.Execute())
}

func TestShowCommand(t *testing.T) {
	a, kv, out := newTestEnv(t, strings.NewReader(""))

	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"show", "sj1"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Mary • Dublin • €40")

	cmd = NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"show", "nope"})
	require.ErrorIs(t, cmd.Execute(), common.ErrNotFound)

	cmd = NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"show"})
	require.Error(t, cmd.Execute())
}

func TestRootCommand_RunsSession(t *testing.T) {
	a, kv, out := newTestEnv(t, strings.NewReader("whoami\nexit\n"))

	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Welcome to QuickJobs")
	assert.Contains(t, out.String(), "Not signed in\n")
}

func TestVersionCommand(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(""))
	cmd := NewRootCommand(a, kv, 0)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Build version: ")
}

func TestRootCommand_LinkWithoutJob(t *testing.T) {
	a, kv, out := newTestEnv(t, strings.NewReader("exit\n"))

	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"--link", "foo=1"})
	require.ErrorIs(t, cmd.Execute(), errNoLinkTarget)
	assert.Empty(t, out.String())
}

func TestExportCommand(t *testing.T) {
	a, kv, _ := newTestEnv(t, strings.NewReader(maryInput))
	require.NoError(t, a.Signup(context.Background()))

	var buf bytes.Buffer
	cmd := NewRootCommand(a, kv, 0)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"export"})
	require.NoError(t, cmd.Execute())

	var docs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	assert.Contains(t, docs, common.KeyAccounts)
	assert.Contains(t, docs, common.KeySession)
	assert.NotContains(t, docs, common.KeyListings, "seed jobs are not stored")

	var accounts []models.Account
	require.NoError(t, json.Unmarshal(docs[common.KeyAccounts], &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "mary@example.com", accounts[0].Email)
}

func TestResetCommand(t *testing.T) {
	ctx := context.Background()
	a, kv, out := newTestEnv(t, strings.NewReader(maryInput+"no\n"))
	require.NoError(t, a.Signup(ctx))

	cmd := NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"reset"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Reset cancelled")
	assert.Len(t, kvstore.Get(ctx, kv, common.KeyAccounts, []models.Account(nil)), 1)

	cmd = NewRootCommand(a, kv, 0)
	cmd.SetArgs([]string{"reset", "--yes"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Store cleared")

	docs, err := kv.Export(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
