package handler_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/artur/filelinkbot/internal/broadcast"
	"github.com/artur/filelinkbot/internal/handler"
)

type fakeBroadcaster struct {
	payloads []broadcast.Payload
	report   broadcast.Report
	err      error
}

func (f *fakeBroadcaster) Broadcast(p broadcast.Payload) (broadcast.Report, error) {
	f.payloads = append(f.payloads, p)
	return f.report, f.err
}

func TestSendAllHandler_IgnoresOutsiders(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	h := handler.NewSendAllHandler(api, pending, testConfig())

	// Non-admin in the group.
	if err := h.Handle(tgbotapi.Update{Message: commandMessage(testGroupID, 7, "/sendall hi")}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Admin outside the group.
	if err := h.Handle(tgbotapi.Update{Message: commandMessage(55, testAdminID, "/sendall hi")}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(api.texts) != 0 {
		t.Errorf("Expected silence, got %v", api.texts)
	}
	if pending.Has(7) || pending.Has(testAdminID) {
		t.Error("Expected no pending broadcasts")
	}
}

func TestSendAllHandler_MissingText(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	h := handler.NewSendAllHandler(api, pending, testConfig())

	if err := h.Handle(tgbotapi.Update{Message: commandMessage(testGroupID, testAdminID, "/sendall")}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(api.texts) != 1 || !strings.Contains(api.texts[0], "provide a message") {
		t.Errorf("Expected usage prompt, got %v", api.texts)
	}
	if pending.Has(testAdminID) {
		t.Error("Expected no pending broadcast without text")
	}
}

func TestSendAllFlow_TextPayload(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	caster := &fakeBroadcaster{report: broadcast.Report{Sent: 3, Blocked: 2}}

	sendall := handler.NewSendAllHandler(api, pending, testConfig())
	followup := handler.NewPendingBroadcastHandler(api, caster, pending, testGroupID)

	if err := sendall.Handle(tgbotapi.Update{Message: commandMessage(testGroupID, testAdminID, "/sendall hello everyone")}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !pending.Has(testAdminID) {
		t.Fatal("Expected a pending broadcast")
	}

	next := &tgbotapi.Message{
		MessageID: 101,
		From:      &tgbotapi.User{ID: testAdminID},
		Chat:      &tgbotapi.Chat{ID: testGroupID},
		Text:      "this message only selects the content type",
	}
	if !followup.CanHandle(tgbotapi.Update{Message: next}) {
		t.Fatal("Expected followup message to be claimed")
	}
	if err := followup.Handle(tgbotapi.Update{Message: next}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The broadcast text is the /sendall argument, not the followup body.
	if len(caster.payloads) != 1 || caster.payloads[0].Text != "hello everyone" {
		t.Errorf("Expected text payload from /sendall argument, got %+v", caster.payloads)
	}
	last := api.texts[len(api.texts)-1]
	if !strings.Contains(last, "sent to 3 users") || !strings.Contains(last, "2 users have blocked") {
		t.Errorf("Expected fan-out summary, got %q", last)
	}
	if pending.Has(testAdminID) {
		t.Error("Expected the pending entry to be consumed")
	}
}

func TestSendAllFlow_PhotoPayload(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	caster := &fakeBroadcaster{report: broadcast.Report{Sent: 1}}

	sendall := handler.NewSendAllHandler(api, pending, testConfig())
	followup := handler.NewPendingBroadcastHandler(api, caster, pending, testGroupID)

	if err := sendall.Handle(tgbotapi.Update{Message: commandMessage(testGroupID, testAdminID, "/sendall caption here")}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	next := photoMessage(testGroupID, testAdminID, "broadcast-photo")
	if err := followup.Handle(tgbotapi.Update{Message: next}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(caster.payloads) != 1 {
		t.Fatalf("Expected one payload, got %d", len(caster.payloads))
	}
	p := caster.payloads[0]
	if p.PhotoFileID != "broadcast-photo" || p.Caption != "caption here" {
		t.Errorf("Expected photo payload with caption, got %+v", p)
	}
}

func TestSendAllFlow_InvalidContentType(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	caster := &fakeBroadcaster{}

	followup := handler.NewPendingBroadcastHandler(api, caster, pending, testGroupID)
	pending.Put(testAdminID, "caption")

	next := &tgbotapi.Message{
		MessageID: 101,
		From:      &tgbotapi.User{ID: testAdminID},
		Chat:      &tgbotapi.Chat{ID: testGroupID},
		Sticker:   &tgbotapi.Sticker{FileID: "sticker"},
	}
	if err := followup.Handle(tgbotapi.Update{Message: next}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(caster.payloads) != 0 {
		t.Errorf("Expected no broadcast, got %+v", caster.payloads)
	}
	if len(api.texts) != 1 || !strings.Contains(api.texts[0], "Invalid content type") {
		t.Errorf("Expected invalid-content notice, got %v", api.texts)
	}
}

func TestSendAllFlow_BroadcastErrorReported(t *testing.T) {
	api := &fakeAPI{}
	pending := broadcast.NewPendingTable(5 * time.Minute)
	caster := &fakeBroadcaster{err: errors.New("connection reset")}

	followup := handler.NewPendingBroadcastHandler(api, caster, pending, testGroupID)
	pending.Put(testAdminID, "caption")

	next := &tgbotapi.Message{
		MessageID: 101,
		From:      &tgbotapi.User{ID: testAdminID},
		Chat:      &tgbotapi.Chat{ID: testGroupID},
		Text:      "go",
	}
	if err := followup.Handle(tgbotapi.Update{Message: next}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(api.texts) != 1 || !strings.Contains(api.texts[0], "Error:") {
		t.Errorf("Expected error report to the group, got %v", api.texts)
	}
}
