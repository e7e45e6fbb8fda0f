// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coursetrack/internal/domain/course"
	"github.com/rpggio/coursetrack/internal/domain/progress"
	"github.com/rpggio/coursetrack/internal/mcp"
	"github.com/rpggio/coursetrack/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Store    *sqlite.KVRepository
	Progress *progress.Service

	sessions []*sdkmcp.ClientSession
}

// New starts a server seeded with groups. The database lives as long as the
// test, so Restart sees everything written before it.
func New(t *testing.T, groups []course.Group) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	ts := &TestServer{DB: db, Store: sqlite.NewKVRepository(db)}
	ts.start(t, groups)

	t.Cleanup(func() {
		ts.stop()
		_ = db.Close()
	})
	return ts
}

// Restart replaces the HTTP server and progress service, keeping the database.
// Sessions opened with Connect are closed first.
func (ts *TestServer) Restart(t *testing.T, groups []course.Group) {
	t.Helper()
	ts.stop()
	ts.start(t, groups)
}

// stop closes client sessions before the server; httptest.Server.Close blocks
// while a streaming request is still open.
func (ts *TestServer) stop() {
	for _, session := range ts.sessions {
		_ = session.Close()
	}
	ts.sessions = nil
	ts.Server.CloseClientConnections()
	ts.Server.Close()
}

func (ts *TestServer) start(t *testing.T, groups []course.Group) {
	t.Helper()

	ts.Progress = progress.NewService(ts.Store, nil, progress.Options{})
	_, err := ts.Progress.Initialize(context.Background(), groups)
	require.NoError(t, err)

	server := mcp.NewServer(mcp.Config{Progress: ts.Progress})
	ts.Server = httptest.NewServer(mcp.NewHTTPHandler(server))
}

// Connect opens a client session against the /mcp endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "testserver-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	ts.sessions = append(ts.sessions, session)
	return session
}
