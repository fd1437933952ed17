package push

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cooklog/config"
)

func TestSendGroceryNotification(t *testing.T) {
	var received Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("cannot decode notification: %v", err)
		}
	}))
	defer server.Close()
	oldServer := config.PUSH_SERVER
	config.PUSH_SERVER = server.URL
	defer func() { config.PUSH_SERVER = oldServer }()

	notification := Notification{
		Title: "Weekend shopping",
		Body:  "Grocery list updated",
		Data: map[string]string{
			"type": NotificationTypeGrocery,
			"list": "5",
		},
	}
	if err := notification.SendTo([]string{"token-1"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if received.Data["type"] != NotificationTypeGrocery {
		t.Errorf("expected grocery notification, got %q", received.Data["type"])
	}
	if received.Data["list"] != "5" {
		t.Errorf("expected list 5, got %q", received.Data["list"])
	}
	if len(received.UserTokens) != 1 || received.UserTokens[0] != "token-1" {
		t.Errorf("unexpected tokens: %v", received.UserTokens)
	}
}
