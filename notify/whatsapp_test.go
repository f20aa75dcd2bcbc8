package notify

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhatsAppSendSuccess(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"token":       q.Get("token"),
			"instance_id": q.Get("instance_id"),
			"jid":         q.Get("jid"),
			"msg":         q.Get("msg"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(server.URL, "tok", "inst")
	data, err := client.Send("0634567890", "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if data["status"] != "success" {
		t.Fatalf("response data = %v", data)
	}
	if gotQuery["jid"] != "252634567890@s.whatsapp.net" {
		t.Fatalf("jid = %q", gotQuery["jid"])
	}
	if gotQuery["token"] != "tok" || gotQuery["instance_id"] != "inst" {
		t.Fatalf("credentials = %v", gotQuery)
	}
	if gotQuery["msg"] != "hello" {
		t.Fatalf("msg = %q", gotQuery["msg"])
	}
}

func TestWhatsAppSendNonJSONBodyTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := NewWhatsAppClient(server.URL, "tok", "inst")
	data, err := client.Send("0634567890", "hello")
	if err != nil {
		t.Fatalf("Send with plain-text body: %v", err)
	}
	if data["rawResponse"] != "OK" {
		t.Fatalf("rawResponse = %v", data["rawResponse"])
	}
}

func TestWhatsAppSendGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"status":"error","message":"instance offline"}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(server.URL, "tok", "inst")
	_, err := client.Send("0634567890", "hello")
	if err == nil {
		t.Fatal("expected error on HTTP 502")
	}
	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("error type = %T, want *DispatchError", err)
	}
	if dispatchErr.Channel != "whatsapp" {
		t.Fatalf("channel = %q", dispatchErr.Channel)
	}
}

func TestWhatsAppSendErrorStatusInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error"}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient(server.URL, "tok", "inst")
	if _, err := client.Send("0634567890", "hello"); err == nil {
		t.Fatal("expected error when gateway reports status error")
	}
}

func TestWhatsAppConfigured(t *testing.T) {
	if NewWhatsAppClient("", "", "").Configured() {
		t.Fatal("empty client should not be configured")
	}
	if !NewWhatsAppClient("", "tok", "inst").Configured() {
		t.Fatal("client with credentials should be configured")
	}
}
