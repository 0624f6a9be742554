package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/session"
	"github.com/ridecircle/ridecircle_client/internal/testutil"
)

func setupAPI(t *testing.T) (*testutil.FakeAPI, *client.Client, *session.Session) {
	t.Helper()

	fake := testutil.NewFakeAPI(t)
	sess := session.New(session.NewMemoryStore())
	api := client.New(fake.BaseURL(), sess)

	return fake, api, sess
}

func loginAs(t *testing.T, sess *session.Session, roles ...string) {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, testutil.TestToken))
	require.NoError(t, sess.SetUserRoles(ctx, roles))
}
