package services

import (
	"testing"
	"time"

	"github.com/studentcollab/backend/internal/models"
)

func TestBoardHub_NewBoardHub(t *testing.T) {
	hub := NewBoardHub()
	if hub == nil {
		t.Fatal("NewBoardHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestBoardHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewBoardHub()

	ch := hub.Subscribe("client1")
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	hub.Subscribe("client2")

	if hub.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}
}

func TestBoardHub_Publish(t *testing.T) {
	hub := NewBoardHub()

	ch := hub.Subscribe("client1")

	event := BoardEvent{
		ProjectID: 10,
		TaskID:    3,
		Status:    models.TaskStatusDone,
		Action:    "updated",
	}

	hub.Publish(event)

	select {
	case received := <-ch:
		if received.ProjectID != 10 {
			t.Errorf("ProjectID = %d, expected 10", received.ProjectID)
		}
		if received.TaskID != 3 {
			t.Errorf("TaskID = %d, expected 3", received.TaskID)
		}
		if received.Status != models.TaskStatusDone {
			t.Errorf("Status = %q, expected DONE", received.Status)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestBoardHub_PublishMultipleClients(t *testing.T) {
	hub := NewBoardHub()

	ch1 := hub.Subscribe("client1")
	ch2 := hub.Subscribe("client2")

	hub.Publish(BoardEvent{ProjectID: 5, Action: "created"})

	for i, ch := range []<-chan BoardEvent{ch1, ch2} {
		select {
		case received := <-ch:
			if received.ProjectID != 5 {
				t.Errorf("client%d: ProjectID = %d, expected 5", i+1, received.ProjectID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client%d: timed out waiting for event", i+1)
		}
	}
}

func TestBoardHub_NonBlockingPublish(t *testing.T) {
	hub := NewBoardHub()

	hub.Subscribe("slow_client")

	// A client that never reads must not block publishers
	for i := 0; i < 200; i++ {
		hub.Publish(BoardEvent{ProjectID: uint(i), Action: "updated"})
	}
}
