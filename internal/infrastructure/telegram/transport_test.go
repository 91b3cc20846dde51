package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

func TestToEvent_Text(t *testing.T) {
	upd := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 7},
		Text: "/spin",
	}}
	ev, ok := toEvent(upd)
	if !ok {
		t.Fatal("text update dropped")
	}
	if ev.Kind != domain.KindText || ev.ChatID != 7 || ev.UserID != 42 || ev.Text != "/spin" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestToEvent_Contact(t *testing.T) {
	upd := tgbotapi.Update{Message: &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 42},
		Chat:    &tgbotapi.Chat{ID: 7},
		Contact: &tgbotapi.Contact{PhoneNumber: "+79001234567"},
	}}
	ev, ok := toEvent(upd)
	if !ok || ev.Kind != domain.KindContact {
		t.Fatalf("event = %+v ok=%v", ev, ok)
	}
	if ev.Contact.PhoneNumber != "+79001234567" {
		t.Fatalf("phone = %q", ev.Contact.PhoneNumber)
	}
}

func TestToEvent_Location(t *testing.T) {
	upd := tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: 42},
		Chat:     &tgbotapi.Chat{ID: 7},
		Location: &tgbotapi.Location{Latitude: 55.75, Longitude: 37.61},
	}}
	ev, ok := toEvent(upd)
	if !ok || ev.Kind != domain.KindLocation {
		t.Fatalf("event = %+v ok=%v", ev, ok)
	}
	if ev.Location.Latitude != 55.75 || ev.Location.Longitude != 37.61 {
		t.Fatalf("location = %+v", ev.Location)
	}
}

func TestToEvent_Callback(t *testing.T) {
	upd := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 42},
		Data:    "profile:rename",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
	}}
	ev, ok := toEvent(upd)
	if !ok || ev.Kind != domain.KindCallback {
		t.Fatalf("event = %+v ok=%v", ev, ok)
	}
	if ev.Callback.ID != "cb1" || ev.Callback.Data != "profile:rename" || ev.UserID != 42 {
		t.Fatalf("callback = %+v userID=%d", ev.Callback, ev.UserID)
	}
}

func TestToEvent_UnsupportedDropped(t *testing.T) {
	if _, ok := toEvent(tgbotapi.Update{}); ok {
		t.Fatal("empty update produced an event")
	}
	sticker := tgbotapi.Update{Message: &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 42},
		Chat:    &tgbotapi.Chat{ID: 7},
		Sticker: &tgbotapi.Sticker{},
	}}
	if _, ok := toEvent(sticker); ok {
		t.Fatal("sticker update produced an event")
	}
}

type recordingDispatcher struct {
	events []domain.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev domain.Event) error {
	d.events = append(d.events, ev)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	marked    []int
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ int) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, id int) error {
	d.marked = append(d.marked, id)
	return nil
}

func textUpdate(id int) tgbotapi.Update {
	return tgbotapi.Update{UpdateID: id, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 1},
		Text: "hello",
	}}
}

func TestHandle_DuplicateSkipped(t *testing.T) {
	dedup := &stubDedup{dupResult: true}
	b := &Bot{dedup: dedup, log: zerolog.Nop()}
	disp := &recordingDispatcher{}

	b.handle(context.Background(), disp, textUpdate(100))

	if len(disp.events) != 0 {
		t.Fatal("duplicate update dispatched")
	}
	if len(dedup.marked) != 0 {
		t.Fatal("duplicate update re-marked")
	}
}

func TestHandle_DedupErrorProcessesAnyway(t *testing.T) {
	dedup := &stubDedup{dupErr: errors.New("redis timeout")}
	b := &Bot{dedup: dedup, log: zerolog.Nop()}
	disp := &recordingDispatcher{}

	b.handle(context.Background(), disp, textUpdate(100))

	if len(disp.events) != 1 {
		t.Fatal("update dropped on dedup error")
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != 100 {
		t.Fatalf("marked = %v", dedup.marked)
	}
}
