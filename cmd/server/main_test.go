package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownOnSignalDrainsAndStops(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	inflight := make(chan struct{})
	server := newServer("0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(inflight)
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(listener)
	}()

	// Start a request that is mid-flight when the signal arrives
	requestDone := make(chan error, 1)
	go func() {
		resp, err := http.Get("http://" + listener.Addr().String())
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err = assert.AnError
			}
		}
		requestDone <- err
	}()
	<-inflight

	ctx, cancel := context.WithCancel(context.Background())
	shutdownDone := make(chan error, 1)
	go func() {
		shutdownDone <- shutdownOnSignal(ctx, server)
	}()
	cancel()

	select {
	case err := <-shutdownDone:
		assert.NoError(t, err, "drain must finish within the timeout")
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}

	assert.NoError(t, <-requestDone, "in-flight request completes during drain")
	assert.ErrorIs(t, <-serveDone, http.ErrServerClosed)

	// New connections are refused once the listener is closed
	_, err = net.DialTimeout("tcp", listener.Addr().String(), 100*time.Millisecond)
	assert.Error(t, err)
}
