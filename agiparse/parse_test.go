package agiparse

import (
	"errors"
	"testing"
)

func TestParseLineNetworkStart(t *testing.T) {
	msg, err := ParseLine([]byte("agi_network: yes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := msg.(NetworkStart); !ok {
		t.Fatalf("expected NetworkStart, got %#v", msg)
	}
}

func TestParseLineHangup(t *testing.T) {
	msg, err := ParseLine([]byte("HANGUP"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := msg.(Hangup); !ok {
		t.Fatalf("expected Hangup, got %#v", msg)
	}
}

func TestParseLineStatusWithOpData(t *testing.T) {
	msg, err := ParseLine([]byte("200 result=1 (some data)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, ok := msg.(Status)
	if !ok {
		t.Fatalf("expected Status, got %#v", msg)
	}
	if status.Code != 200 || status.Result != 1 {
		t.Fatalf("unexpected status fields: %#v", status)
	}
	if status.OperationalData == nil || *status.OperationalData != "some data" {
		t.Fatalf("unexpected operational data: %#v", status.OperationalData)
	}
}

func TestParseLineStatusWithoutOpData(t *testing.T) {
	msg, err := ParseLine([]byte("200 result=0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, ok := msg.(Status)
	if !ok {
		t.Fatalf("expected Status, got %#v", msg)
	}
	if status.Code != 200 || status.Result != 0 {
		t.Fatalf("unexpected status fields: %#v", status)
	}
	if status.OperationalData != nil {
		t.Fatalf("expected nil operational data, got %q", *status.OperationalData)
	}
}

func TestParseLineStatusNegativeResult(t *testing.T) {
	msg, err := ParseLine([]byte("511 result=-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status := msg.(Status)
	if status.Code != 511 || status.Result != -1 {
		t.Fatalf("unexpected status fields: %#v", status)
	}
}

func TestParseLineUnknown(t *testing.T) {
	_, err := ParseLine([]byte("not a message at all"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != NotAnAGIMessage {
		t.Fatalf("expected NotAnAGIMessage, got %v", err)
	}
}

func TestParseLineLooksLikeStatusButMalformed(t *testing.T) {
	_, err := ParseLine([]byte("200 notresult=1"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != NotAStatus {
		t.Fatalf("expected NotAStatus, got %v", err)
	}
}

func TestParseVariableDumpBasic(t *testing.T) {
	block := "agi_network: yes\r\n" +
		"agi_request: agi://127.0.0.1/myscript?foo=bar\r\n" +
		"agi_channel: SIP/1234-00000001\r\n" +
		"agi_priority: 1\r\n" +
		"agi_enhanced: 0.0\r\n" +
		"agi_threadid: 4610314416\r\n"

	dump, err := ParseVariableDump([]byte(block))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dump.RequestURI == nil || dump.RequestURI.Path != "/myscript" {
		t.Fatalf("unexpected request URI: %#v", dump.RequestURI)
	}
	if got, ok := dump.Variables.Get("agi_channel"); !ok || got != "SIP/1234-00000001" {
		t.Fatalf("unexpected agi_channel: %q, %v", got, ok)
	}
	if p, err := dump.Variables.Priority(); err != nil || p != 1 {
		t.Fatalf("unexpected priority: %d, %v", p, err)
	}
	if e, err := dump.Variables.Enhanced(); err != nil || e != false {
		t.Fatalf("unexpected enhanced: %v, %v", e, err)
	}
	if tid, err := dump.Variables.ThreadID(); err != nil || tid != 4610314416 {
		t.Fatalf("unexpected threadid: %d, %v", tid, err)
	}
}

func TestParseVariableDumpPreservesOrder(t *testing.T) {
	block := "agi_request: agi://x/y\r\nagi_b: 2\r\nagi_a: 1\r\n"
	dump, err := ParseVariableDump([]byte(block))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keys := dump.Variables.Keys()
	want := []string{"agi_request", "agi_b", "agi_a"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected key count: %v", keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("unexpected key order: %v", keys)
		}
	}
}

func TestParseVariableDumpFirstSeenRequestKeyWins(t *testing.T) {
	block := "agi_network_script: agi://first/one\r\nagi_request: agi://second/two\r\n"
	dump, err := ParseVariableDump([]byte(block))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dump.RequestURI.Path != "/one" {
		t.Fatalf("expected first-seen request key to win, got %q", dump.RequestURI.Path)
	}
}

func TestParseVariableDumpMissingRequest(t *testing.T) {
	block := "agi_channel: SIP/1234-00000001\r\n"
	_, err := ParseVariableDump([]byte(block))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != VariableDumpWithoutRequest {
		t.Fatalf("expected VariableDumpWithoutRequest, got %v", err)
	}
}

func TestParseVariableDumpMalformedLine(t *testing.T) {
	block := "agi_request: agi://x/y\r\nthisisnotvalid\r\n"
	_, err := ParseVariableDump([]byte(block))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != NotAVariableDump {
		t.Fatalf("expected NotAVariableDump, got %v", err)
	}
}

func TestVariablesCustomArg(t *testing.T) {
	vars := NewVariables()
	vars.Set("agi_arg_1", "first")
	vars.Set("agi_arg_2", "second")
	if v, ok := vars.CustomArg(1); !ok || v != "first" {
		t.Fatalf("unexpected custom arg 1: %q, %v", v, ok)
	}
	if _, ok := vars.CustomArg(3); ok {
		t.Fatalf("expected custom arg 3 to be absent")
	}
}
