// Package telegram adapts the Telegram Bot API to the transport ports: it
// turns incoming updates into domain events and logical keyboards into
// concrete reply markups.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/fortunaclub/spinbot/internal/core/domain"
	"github.com/fortunaclub/spinbot/internal/core/ports"
	"github.com/fortunaclub/spinbot/internal/core/service"
)

const pollTimeoutSeconds = 30

// Dispatcher consumes one inbound event at a time.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev domain.Event) error
}

// Dedup abstracts the update idempotency store. Telegram redelivers updates
// after restarts or timeouts; a processed update must not run twice.
type Dedup interface {
	IsDuplicate(ctx context.Context, updateID int) (bool, error)
	Mark(ctx context.Context, updateID int) error
}

// Bot is the long-polling transport. It implements ports.Sender.
type Bot struct {
	api   *tgbotapi.BotAPI
	dedup Dedup
	log   zerolog.Logger
}

func New(token string, dedup Dedup, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	if dedup == nil {
		dedup = NopDedup{}
	}
	log.Info().Str("username", api.Self.UserName).Msg("telegram bot connected")
	return &Bot{api: api, dedup: dedup, log: log}, nil
}

// Run consumes updates until ctx is cancelled. Updates are dispatched
// strictly one at a time, in arrival order, so two reactions for one user
// can never interleave.
func (b *Bot) Run(ctx context.Context, d Dispatcher) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handle(ctx, d, upd)
		}
	}
}

func (b *Bot) handle(ctx context.Context, d Dispatcher, upd tgbotapi.Update) {
	isDup, err := b.dedup.IsDuplicate(ctx, upd.UpdateID)
	if err != nil {
		// Fail open: a broken dedup store must not stall the bot.
		b.log.Warn().Err(err).Int("update_id", upd.UpdateID).Msg("dedup check failed, processing anyway")
	}
	if isDup {
		b.log.Debug().Int("update_id", upd.UpdateID).Msg("duplicate update skipped")
		return
	}

	ev, ok := toEvent(upd)
	if !ok {
		return
	}
	if err := d.Dispatch(ctx, ev); err != nil {
		b.log.Error().Err(err).
			Int64("chat_id", ev.ChatID).
			Str("kind", string(ev.Kind)).
			Msg("dispatch failed")
	}
	if err := b.dedup.Mark(ctx, upd.UpdateID); err != nil {
		b.log.Warn().Err(err).Int("update_id", upd.UpdateID).Msg("failed to mark update processed")
	}
}

// toEvent maps a raw update onto the single domain event it carries.
func toEvent(upd tgbotapi.Update) (domain.Event, bool) {
	if cq := upd.CallbackQuery; cq != nil && cq.Message != nil {
		return domain.Event{
			Kind:     domain.KindCallback,
			ChatID:   cq.Message.Chat.ID,
			UserID:   cq.From.ID,
			Callback: &domain.Callback{ID: cq.ID, Data: cq.Data},
		}, true
	}

	msg := upd.Message
	if msg == nil || msg.From == nil {
		return domain.Event{}, false
	}
	ev := domain.Event{ChatID: msg.Chat.ID, UserID: msg.From.ID}

	switch {
	case msg.Contact != nil:
		ev.Kind = domain.KindContact
		ev.Contact = &domain.Contact{PhoneNumber: msg.Contact.PhoneNumber}
	case msg.Location != nil:
		ev.Kind = domain.KindLocation
		ev.Location = &domain.Location{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	case msg.Text != "":
		ev.Kind = domain.KindText
		ev.Text = msg.Text
	default:
		return domain.Event{}, false
	}
	return ev, true
}

// SendMessage implements ports.Sender.
func (b *Bot) SendMessage(_ context.Context, chatID int64, text string, kb ports.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// AckCallback implements ports.Sender.
func (b *Bot) AckCallback(_ context.Context, id string) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		return fmt.Errorf("ack callback: %w", err)
	}
	return nil
}

func replyMarkup(kb ports.Keyboard) interface{} {
	switch kb {
	case ports.KeyboardMain:
		markup := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(service.LabelBalance),
				tgbotapi.NewKeyboardButton(service.LabelSpin),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(service.LabelProfile),
				tgbotapi.NewKeyboardButton(service.LabelInvite),
			),
		)
		markup.ResizeKeyboard = true
		return markup

	case ports.KeyboardContact:
		markup := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact("📱 Share my phone number"),
			),
		)
		markup.ResizeKeyboard = true
		markup.OneTimeKeyboard = true
		return markup

	case ports.KeyboardLocation:
		markup := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonLocation("📍 Share my location"),
			),
		)
		markup.ResizeKeyboard = true
		markup.OneTimeKeyboard = true
		return markup

	case ports.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)

	case ports.KeyboardProfile:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Change name", service.CallbackRename),
				tgbotapi.NewInlineKeyboardButtonData("🤝 Enter code", service.CallbackReferral),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📜 History", service.CallbackHistory),
				tgbotapi.NewInlineKeyboardButtonData("🎁 Prizes", service.CallbackPrizes),
			),
		)

	default:
		return nil
	}
}
