package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/yogastudio/internal/server/config"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepoManager struct {
	repomanager.RepositoryManager
	migrateErr error
	migrated   bool
}

func (m *stubRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func swapSeams(t *testing.T, db *sql.DB, openErr error, rm repomanager.RepositoryManager) {
	t.Helper()
	origOpen, origRM := openDB, newRepoManager
	t.Cleanup(func() { openDB, newRepoManager = origOpen, origRM })

	openDB = func(context.Context, string) (*sql.DB, error) { return db, openErr }
	newRepoManager = func() repomanager.RepositoryManager { return rm }
}

func TestNewApp_OpenError(t *testing.T) {
	swapSeams(t, nil, errors.New("connection refused"), &stubRepoManager{})

	_, err := NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_MigrationErrorClosesDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	rm := &stubRepoManager{migrateErr: errors.New("bad sql")}
	swapSeams(t, db, nil, rm)

	_, err = NewApp(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db migrate error")
	assert.True(t, rm.migrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_RunServesAndStops(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	swapSeams(t, db, nil, &stubRepoManager{})

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ready := make(chan string, 1)
	app.server.ready = ready

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	var addr string
	select {
	case addr = <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://" + addr + "/api/session")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
