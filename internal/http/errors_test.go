package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemhub/internal/domain"
	"itemhub/internal/repository"
	"itemhub/internal/service"
)

var errDisk = errors.New("disk I/O error at /var/secret/itemhub.db")

// brokenItems fails every ownership lookup and list with a storage error.
type brokenItems struct {
	service.ItemService
}

func (brokenItems) OwnerOf(context.Context, int64) (*int64, error) {
	return nil, errDisk
}

func (brokenItems) List(context.Context, repository.ListParams) ([]domain.Item, error) {
	return nil, domain.Operation("Error fetching item list.", errDisk)
}

func newBrokenItemsServer(t *testing.T) (*testServer, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	srv := newTestServer(t, func(o *Options) {
		o.Items = brokenItems{ItemService: o.Items}
		o.Logger = logger
	})
	return srv, hook
}

// errorEntry returns the logged entry carrying the failure cause.
func errorEntry(t *testing.T, hook *test.Hook) *logrus.Entry {
	t.Helper()
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			return entry
		}
	}
	require.FailNow(t, "no error entry logged")
	return nil
}

func TestRespondError_OwnerLookupFailureIsGeneric(t *testing.T) {
	srv, hook := newBrokenItemsServer(t)
	srv.addUser(t, "alice", "alice-password", domain.GroupStandard, false)
	alice := srv.token(t, "alice", "alice-password")
	hook.Reset()

	rec := srv.call(http.MethodGet, "/api/v1/items/1/", alice, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error fetching object.", detail(t, rec))
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), "disk")

	entry := errorEntry(t, hook)
	assert.Equal(t, "Error fetching object.", entry.Message)
	assert.Equal(t, errDisk, entry.Data["error"])
	assert.Equal(t, "/api/v1/items/:id/", entry.Data["path"])
}

func TestRespondError_AdministratorSkipsOwnerLookup(t *testing.T) {
	srv, _ := newBrokenItemsServer(t)
	admin := srv.token(t, "admin", "admin-password")

	rec := srv.call(http.MethodGet, "/api/v1/items/1/", admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item not found.", detail(t, rec))
}

func TestRespondError_OperationFailureHidesCause(t *testing.T) {
	srv, hook := newBrokenItemsServer(t)
	admin := srv.token(t, "admin", "admin-password")
	hook.Reset()

	rec := srv.call(http.MethodGet, "/api/v1/items/", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error fetching item list.", detail(t, rec))
	assert.NotContains(t, rec.Body.String(), "secret")

	entry := errorEntry(t, hook)
	assert.ErrorIs(t, entry.Data["error"].(error), errDisk)
}
