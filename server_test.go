package blazingagi

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/curatorsigma/blazing-agi/command"
	"github.com/curatorsigma/blazing-agi/connection"
	"github.com/curatorsigma/blazing-agi/router"
)

func TestServeDispatchesToMatchingRoute(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	handled := make(chan string, 1)
	r := router.New().Route("/scripts/:name", HandlerFunc(func(ctx context.Context, conn *connection.Connection, req *Request) error {
		handled <- req.Captures["name"]
		_, err := connection.SendCommand(ctx, conn, command.NewVerbose("hi"))
		return err
	}))

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() { serveDone <- Serve(ctx, listener, r) }()

	conn, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("net.Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("agi_network: yes\n")); err != nil {
		t.Fatalf("write handshake: %v", err)
	}
	dump := "agi_request: agi://127.0.0.1/scripts/myscript\n" +
		"agi_channel: SIP/1234-0001\n" +
		"agi_uniqueid: 1234.1\n" +
		"\n"
	if _, err := conn.Write([]byte(dump)); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading command: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "VERBOSE") {
		t.Fatalf("expected a VERBOSE command, got %q", line)
	}
	if _, err := conn.Write([]byte("200 result=1\n")); err != nil {
		t.Fatalf("write reply: %v", err)
	}

	select {
	case name := <-handled:
		if name != "myscript" {
			t.Fatalf("expected captured name 'myscript', got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the route to be invoked")
	}

	cancel()
	select {
	case err := <-serveDone:
		if err != nil {
			t.Fatalf("unexpected Serve error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Serve to return")
	}
}

func TestServeRouteMissClosesWithoutFallbackHandlerPanicking(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	r := router.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveDone := make(chan error, 1)
	go func() { serveDone <- Serve(ctx, listener, r) }()

	conn, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("net.Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("agi_network: yes\n")); err != nil {
		t.Fatalf("write handshake: %v", err)
	}
	dump := "agi_request: agi://127.0.0.1/nonexistent\n\n"
	if _, err := conn.Write([]byte(dump)); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading fallback verbose: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "VERBOSE") {
		t.Fatalf("expected the fallback VERBOSE, got %q", line)
	}
	if _, err := conn.Write([]byte("200 result=1\n")); err != nil {
		t.Fatalf("write reply: %v", err)
	}
}
