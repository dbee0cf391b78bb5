package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lithoslabs/evidence"
	evhttp "github.com/lithoslabs/evidence/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 content"))
	}))
	t.Cleanup(srv.Close)

	data, err := evhttp.NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 content"), data)
}

func TestFetcher_Fetch_Non200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := evhttp.NewFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, evidence.EUNAVAILABLE, evidence.ErrorCode(err))
}

func TestFetcher_Fetch_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := evhttp.NewFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, evidence.EUNAVAILABLE, evidence.ErrorCode(err))
}
