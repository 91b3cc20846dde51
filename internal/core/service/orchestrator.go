// Package service contains the dialog orchestration layer: one ordered
// dispatch over inbound chat events, the multi-step login/registration
// wizard, and the spin admission rule (auth, then presence, then rate).
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fortunaclub/spinbot/internal/clock"
	"github.com/fortunaclub/spinbot/internal/core/domain"
	"github.com/fortunaclub/spinbot/internal/core/ports"
	"github.com/fortunaclub/spinbot/internal/metrics"
)

// Options carries the tunables of the dialog layer.
type Options struct {
	// AuthCode is sent with login/register calls; the user is never asked
	// for it.
	AuthCode string
	// MinSpinBalance is only used for the balance hint; the backend is the
	// authority on whether a spin is affordable.
	MinSpinBalance int
	// SpinResultDelay is the pause before the deferred result message.
	SpinResultDelay time.Duration
	// TokenExpiry reports when a backend token lapses, for profile display.
	// May be nil when tokens are opaque.
	TokenExpiry func(token string) (time.Time, bool)
}

// Deps bundles the collaborators injected into the orchestrator.
type Deps struct {
	Sessions  ports.SessionStore
	Dialogs   ports.DialogStore
	Geo       ports.GeoConfirmer
	Rate      ports.RateLimiter
	Referrals ports.ReferralLedger
	Backend   ports.BackendClient
	Sender    ports.Sender
	Input     *InputValidator
	Clock     clock.Clock
	Log       zerolog.Logger
}

// Orchestrator reacts to inbound transport events. Events are handled one
// at a time; each reaction re-reads the stores it needs, never caching
// state across a backend call.
type Orchestrator struct {
	sessions  ports.SessionStore
	dialogs   ports.DialogStore
	geo       ports.GeoConfirmer
	rate      ports.RateLimiter
	referrals ports.ReferralLedger
	backend   ports.BackendClient
	sender    ports.Sender
	input     *InputValidator
	clk       clock.Clock
	opts      Options
	log       zerolog.Logger
}

func NewOrchestrator(d Deps, opts Options) *Orchestrator {
	if opts.SpinResultDelay <= 0 {
		opts.SpinResultDelay = 7 * time.Second
	}
	return &Orchestrator{
		sessions:  d.Sessions,
		dialogs:   d.Dialogs,
		geo:       d.Geo,
		rate:      d.Rate,
		referrals: d.Referrals,
		backend:   d.Backend,
		sender:    d.Sender,
		input:     d.Input,
		clk:       d.Clock,
		opts:      opts,
		log:       d.Log,
	}
}

// Dispatch routes one inbound event to the single applicable reaction.
// Candidates are tried in a fixed precedence order; the first that consumes
// the event wins and all later ones are skipped, so two reactions can never
// fire for the same event.
func (o *Orchestrator) Dispatch(ctx context.Context, ev domain.Event) error {
	metrics.EventsReceivedTotal.WithLabelValues(string(ev.Kind)).Inc()

	handlers := []func(context.Context, domain.Event) (bool, error){
		o.onLocation,
		o.onContact,
		o.onReferralOrSkip,
		o.onDisplayName,
		o.onRenameInput,
		o.onReferralEntry,
		o.onCallback,
		o.onCommand,
	}
	for _, h := range handlers {
		handled, err := h(ctx, ev)
		if handled || err != nil {
			return err
		}
	}

	o.log.Debug().
		Int64("chat_id", ev.ChatID).
		Str("kind", string(ev.Kind)).
		Msg("event ignored")
	return nil
}

// onLocation turns a shared location into a presence grant, but only when
// one was asked for and the user is authenticated.
func (o *Orchestrator) onLocation(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindLocation || ev.Location == nil {
		return false, nil
	}
	if !o.geo.ConfirmPending(ev.UserID) {
		return false, nil
	}
	if _, ok := o.authSession(ctx, ev.UserID); !ok {
		return false, nil
	}

	o.geo.Grant(ev.UserID, ev.Location.Latitude, ev.Location.Longitude)
	o.geo.ClearPending(ev.UserID)

	o.log.Info().Int64("user_id", ev.UserID).Msg("presence confirmed")
	return true, o.send(ctx, ev.ChatID, msgGeoConfirmed, ports.KeyboardMain)
}

// onContact consumes the shared contact card during the login wizard.
func (o *Orchestrator) onContact(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindContact || ev.Contact == nil {
		return false, nil
	}
	if o.dialogs.Get(ev.ChatID).Step != domain.StepAwaitPhoneContact {
		return false, nil
	}

	phone, err := NormalizePhone(ev.Contact.PhoneNumber)
	if err != nil || o.input.Phone(phone) != nil {
		return true, o.send(ctx, ev.ChatID, msgBadContact, ports.KeyboardContact)
	}

	token, err := o.backend.Login(ctx, phone, o.opts.AuthCode, "")
	switch {
	case err == nil:
		if err := o.sessions.Set(ctx, ev.UserID, domain.Session{Token: token, Phone: phone}); err != nil {
			o.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("store session")
			return true, o.send(ctx, ev.ChatID, msgGenericFailure, ports.KeyboardNone)
		}
		o.resetDialog(ev.ChatID)
		o.log.Info().Int64("user_id", ev.UserID).Msg("login ok")
		return true, o.send(ctx, ev.ChatID, loggedInText(phone), ports.KeyboardMain)

	case errors.Is(err, domain.ErrNotRegistered):
		// New phone: hand over to the registration wizard.
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitReferralOrSkip, Phone: phone})
		return true, o.send(ctx, ev.ChatID, msgReferralPrompt, ports.KeyboardRemove)

	default:
		o.countBackendError(err)
		return true, o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardNone)
	}
}

// onReferralOrSkip handles the referral-code-or-skip step of registration.
func (o *Orchestrator) onReferralOrSkip(ctx context.Context, ev domain.Event) (bool, error) {
	st := o.dialogs.Get(ev.ChatID)
	if ev.Kind != domain.KindText || st.Step != domain.StepAwaitReferralOrSkip {
		return false, nil
	}
	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		// Commands are never consumed by a wizard step.
		return false, nil
	}

	if strings.EqualFold(text, skipKeyword) {
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitDisplayName, Phone: st.Phone})
		return true, o.send(ctx, ev.ChatID, msgNamePrompt, ports.KeyboardNone)
	}

	if code, ok := o.input.ReferralCode(text); ok {
		o.referrals.SetIfPresent(ev.UserID, code)
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitDisplayName, Phone: st.Phone})
		return true, o.send(ctx, ev.ChatID, msgReferralAccepted, ports.KeyboardNone)
	}

	// Invalid code: re-prompt, no transition.
	return true, o.send(ctx, ev.ChatID, msgReferralInvalid, ports.KeyboardNone)
}

// onDisplayName completes registration with the chosen display name.
func (o *Orchestrator) onDisplayName(ctx context.Context, ev domain.Event) (bool, error) {
	st := o.dialogs.Get(ev.ChatID)
	if ev.Kind != domain.KindText || st.Step != domain.StepAwaitDisplayName {
		return false, nil
	}
	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		return false, nil
	}

	// Guard against step misordering: a referral code is not a name.
	if o.input.LooksLikeReferralCode(text) {
		return true, o.send(ctx, ev.ChatID, msgNameLikeCode, ports.KeyboardNone)
	}
	if o.input.DisplayName(text) != nil {
		return true, o.send(ctx, ev.ChatID, msgNameInvalid, ports.KeyboardNone)
	}

	referral, _ := o.referrals.Peek(ev.UserID)
	token, err := o.backend.Register(ctx, st.Phone, o.opts.AuthCode, text, referral)
	switch {
	case err == nil:
		// Attribution is cleared only once registration stuck.
		o.referrals.Consume(ev.UserID)
		if err := o.sessions.Set(ctx, ev.UserID, domain.Session{Token: token, Phone: st.Phone}); err != nil {
			o.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("store session")
			return true, o.send(ctx, ev.ChatID, msgGenericFailure, ports.KeyboardNone)
		}
		o.resetDialog(ev.ChatID)
		o.log.Info().
			Int64("user_id", ev.UserID).
			Bool("with_referral", referral != "").
			Msg("registration ok")
		return true, o.send(ctx, ev.ChatID, registeredText(text), ports.KeyboardMain)

	case errors.Is(err, domain.ErrValidationFailed):
		o.countBackendError(err)
		return true, o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardNone)

	default:
		o.countBackendError(err)
		return true, o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardNone)
	}
}

// onRenameInput applies a new display name to an existing profile. The
// wizard state is reset regardless of the outcome.
func (o *Orchestrator) onRenameInput(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindText || o.dialogs.Get(ev.ChatID).Step != domain.StepAwaitRenameInput {
		return false, nil
	}
	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		return false, nil
	}

	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		o.resetDialog(ev.ChatID)
		return true, o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	if o.input.DisplayName(text) != nil {
		return true, o.send(ctx, ev.ChatID, msgNameInvalid, ports.KeyboardNone)
	}

	err := o.backend.UpdateName(ctx, sess.Token, text)
	o.resetDialog(ev.ChatID)
	switch {
	case err == nil:
		return true, o.send(ctx, ev.ChatID, msgRenamed, ports.KeyboardMain)
	case errors.Is(err, domain.ErrAuthRejected):
		o.countBackendError(err)
		o.revokeSession(ctx, ev.UserID)
		return true, o.send(ctx, ev.ChatID, msgSessionExpired, ports.KeyboardRemove)
	default:
		o.countBackendError(err)
		return true, o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardMain)
	}
}

// onReferralEntry stores a code entered from the profile menu, outside the
// registration wizard.
func (o *Orchestrator) onReferralEntry(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindText || o.dialogs.Get(ev.ChatID).Step != domain.StepAwaitReferralEntry {
		return false, nil
	}
	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		return false, nil
	}

	code, ok := o.input.ReferralCode(text)
	if !ok {
		return true, o.send(ctx, ev.ChatID, msgReferralInvalid, ports.KeyboardNone)
	}
	o.referrals.SetIfPresent(ev.UserID, code)
	o.resetDialog(ev.ChatID)
	return true, o.send(ctx, ev.ChatID, msgReferralSaved, ports.KeyboardMain)
}

// onCallback reacts to inline-keyboard button presses.
func (o *Orchestrator) onCallback(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindCallback || ev.Callback == nil {
		return false, nil
	}
	if err := o.sender.AckCallback(ctx, ev.Callback.ID); err != nil {
		o.log.Warn().Err(err).Str("callback_id", ev.Callback.ID).Msg("ack callback")
	}

	switch ev.Callback.Data {
	case CallbackRename:
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitRenameInput})
		return true, o.send(ctx, ev.ChatID, msgRenamePrompt, ports.KeyboardNone)
	case CallbackReferral:
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitReferralEntry})
		return true, o.send(ctx, ev.ChatID, msgReferralEntryPrompt, ports.KeyboardNone)
	case CallbackHistory:
		return true, o.showHistory(ctx, ev)
	case CallbackPrizes:
		return true, o.showPrizes(ctx, ev)
	default:
		o.log.Debug().Str("data", ev.Callback.Data).Msg("unknown callback action")
		return true, nil
	}
}

// onCommand routes menu labels and slash commands.
func (o *Orchestrator) onCommand(ctx context.Context, ev domain.Event) (bool, error) {
	if ev.Kind != domain.KindText {
		return false, nil
	}

	switch strings.TrimSpace(ev.Text) {
	case LabelBalance:
		return true, o.showBalance(ctx, ev)
	case LabelSpin:
		return true, o.spin(ctx, ev)
	case LabelProfile:
		return true, o.showProfile(ctx, ev)
	case LabelInvite:
		return true, o.showInvite(ctx, ev)
	}

	cmd, payload := parseCommand(ev.Text)
	switch cmd {
	case "/start":
		return true, o.start(ctx, ev, payload)
	case "/login":
		o.transition(ev.ChatID, domain.DialogState{Step: domain.StepAwaitPhoneContact})
		return true, o.send(ctx, ev.ChatID, msgLoginPrompt, ports.KeyboardContact)
	case "/logout":
		return true, o.logout(ctx, ev)
	case "/cancel":
		o.resetDialog(ev.ChatID)
		o.geo.ClearPending(ev.UserID)
		return true, o.send(ctx, ev.ChatID, msgCancelled, o.mainOrNone(ctx, ev.UserID))
	case "/balance":
		return true, o.showBalance(ctx, ev)
	case "/spin":
		return true, o.spin(ctx, ev)
	case "/profile":
		return true, o.showProfile(ctx, ev)
	case "/prizes":
		return true, o.showPrizes(ctx, ev)
	case "/history":
		return true, o.showHistory(ctx, ev)
	case "/recent":
		return true, o.showRecent(ctx, ev)
	case "/invite":
		return true, o.showInvite(ctx, ev)
	default:
		return false, nil
	}
}

func (o *Orchestrator) start(ctx context.Context, ev domain.Event, payload string) error {
	// A deep-link payload is a referral attribution from first contact.
	if payload != "" {
		if code, ok := o.input.ReferralCode(payload); ok {
			o.referrals.SetIfPresent(ev.UserID, code)
		}
	}
	_, authed := o.authSession(ctx, ev.UserID)
	kb := ports.KeyboardNone
	if authed {
		kb = ports.KeyboardMain
	}
	return o.send(ctx, ev.ChatID, welcomeText(authed), kb)
}

func (o *Orchestrator) logout(ctx context.Context, ev domain.Event) error {
	if err := o.sessions.Remove(ctx, ev.UserID); err != nil {
		o.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("remove session")
		return o.send(ctx, ev.ChatID, msgGenericFailure, ports.KeyboardNone)
	}
	o.resetDialog(ev.ChatID)
	o.geo.ClearPending(ev.UserID)
	return o.send(ctx, ev.ChatID, msgLoggedOut, ports.KeyboardRemove)
}

func (o *Orchestrator) showBalance(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	balance, err := o.backend.Balance(ctx, sess.Token)
	if err != nil {
		return o.backendFailure(ctx, ev, err)
	}
	return o.send(ctx, ev.ChatID, balanceText(balance, o.opts.MinSpinBalance), ports.KeyboardMain)
}

// spin runs the admission pipeline: auth, then presence, then rate. The
// checks fail fast in that order, each with its own user-facing reason.
func (o *Orchestrator) spin(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		metrics.SpinAttemptsTotal.WithLabelValues("no_auth").Inc()
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}

	grant, ok := o.geo.Get(ev.UserID)
	if !ok {
		metrics.SpinAttemptsTotal.WithLabelValues("no_geo").Inc()
		o.geo.RequestConfirm(ev.UserID)
		return o.send(ctx, ev.ChatID, msgGeoPrompt, ports.KeyboardLocation)
	}

	if !o.rate.CanAct(ev.UserID) {
		metrics.SpinAttemptsTotal.WithLabelValues("rate_limited").Inc()
		wait := o.rate.NextAllowed(ev.UserID).Sub(o.clk.Now())
		return o.send(ctx, ev.ChatID, rateLimitedText(wait), ports.KeyboardMain)
	}

	// The attempt is counted before the call so a slow or failed backend
	// still burns local budget.
	o.rate.Record(ev.UserID)

	res, err := o.backend.Spin(ctx, sess.Token, grant.Latitude, grant.Longitude)
	if err != nil {
		return o.spinFailure(ctx, ev, err)
	}

	metrics.SpinAttemptsTotal.WithLabelValues("ok").Inc()
	o.log.Info().
		Int64("user_id", ev.UserID).
		Str("prize", res.PrizeName).
		Int("new_balance", res.NewBalance).
		Msg("spin ok")

	o.scheduleSpinResult(ev.ChatID, res)
	return o.send(ctx, ev.ChatID, msgSpinning, ports.KeyboardMain)
}

func (o *Orchestrator) spinFailure(ctx context.Context, ev domain.Event, err error) error {
	o.countBackendError(err)
	metrics.SpinAttemptsTotal.WithLabelValues("backend_error").Inc()

	var apiErr *domain.APIError
	errors.As(err, &apiErr)

	switch {
	case errors.Is(err, domain.ErrAuthRejected):
		o.revokeSession(ctx, ev.UserID)
		return o.send(ctx, ev.ChatID, msgSessionExpired, ports.KeyboardRemove)

	case errors.Is(err, domain.ErrOutOfRange):
		// A time-valid grant can be invalidated early by the backend.
		o.geo.Revoke(ev.UserID)
		o.geo.RequestConfirm(ev.UserID)
		return o.send(ctx, ev.ChatID, msgOutOfRange, ports.KeyboardLocation)

	case errors.Is(err, domain.ErrRateLimited):
		var wait time.Duration
		if apiErr != nil {
			wait = apiErr.RetryAfter
		}
		return o.send(ctx, ev.ChatID, rateLimitedText(wait), ports.KeyboardMain)

	default:
		return o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardMain)
	}
}

// scheduleSpinResult defers the result message for suspense. Fire-and-
// forget: a restart before it fires simply drops it.
func (o *Orchestrator) scheduleSpinResult(chatID int64, res domain.SpinResult) {
	text := spinResultText(res)
	o.clk.AfterFunc(o.opts.SpinResultDelay, func() {
		if err := o.sender.SendMessage(context.Background(), chatID, text, ports.KeyboardMain); err != nil {
			o.log.Warn().Err(err).Int64("chat_id", chatID).Msg("deferred spin result not delivered")
		}
	})
}

func (o *Orchestrator) showProfile(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	profile, err := o.backend.Profile(ctx, sess.Token)
	if err != nil {
		return o.backendFailure(ctx, ev, err)
	}

	var expiry time.Time
	if o.opts.TokenExpiry != nil {
		if t, known := o.opts.TokenExpiry(sess.Token); known {
			expiry = t
		}
	}
	return o.send(ctx, ev.ChatID, profileText(profile, expiry), ports.KeyboardProfile)
}

func (o *Orchestrator) showInvite(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	profile, err := o.backend.Profile(ctx, sess.Token)
	if err != nil {
		return o.backendFailure(ctx, ev, err)
	}
	return o.send(ctx, ev.ChatID, inviteText(profile.ReferralCode), ports.KeyboardMain)
}

func (o *Orchestrator) showPrizes(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	prizes, err := o.backend.Prizes(ctx, sess.Token)
	if err != nil {
		return o.backendFailure(ctx, ev, err)
	}
	return o.send(ctx, ev.ChatID, prizesText(prizes), ports.KeyboardMain)
}

func (o *Orchestrator) showHistory(ctx context.Context, ev domain.Event) error {
	sess, ok := o.authSession(ctx, ev.UserID)
	if !ok {
		return o.send(ctx, ev.ChatID, msgLoginFirst, ports.KeyboardNone)
	}
	txs, err := o.backend.Transactions(ctx, sess.Token)
	if err != nil {
		return o.backendFailure(ctx, ev, err)
	}
	return o.send(ctx, ev.ChatID, historyText(txs), ports.KeyboardMain)
}

// showRecent is the only unauthenticated backend action.
func (o *Orchestrator) showRecent(ctx context.Context, ev domain.Event) error {
	wins, err := o.backend.RecentWins(ctx)
	if err != nil {
		o.countBackendError(err)
		return o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardNone)
	}
	return o.send(ctx, ev.ChatID, winsText(wins), ports.KeyboardNone)
}

// ── helpers ──────────────────────────────────────────────────────────────

func (o *Orchestrator) send(ctx context.Context, chatID int64, text string, kb ports.Keyboard) error {
	return o.sender.SendMessage(ctx, chatID, text, kb)
}

// authSession returns the stored session when the user holds a token.
func (o *Orchestrator) authSession(ctx context.Context, userID int64) (domain.Session, bool) {
	sess, ok, err := o.sessions.Get(ctx, userID)
	if err != nil {
		o.log.Error().Err(err).Int64("user_id", userID).Msg("read session")
		return domain.Session{}, false
	}
	return sess, ok && sess.Token != ""
}

// revokeSession drops the stored token after a backend auth rejection, the
// single case where error handling mutates another store.
func (o *Orchestrator) revokeSession(ctx context.Context, userID int64) {
	if err := o.sessions.Remove(ctx, userID); err != nil {
		o.log.Error().Err(err).Int64("user_id", userID).Msg("revoke session")
		return
	}
	metrics.SessionsRevokedTotal.Inc()
	o.log.Info().Int64("user_id", userID).Msg("session revoked after auth rejection")
}

// backendFailure is the shared error path for read-only backend actions.
func (o *Orchestrator) backendFailure(ctx context.Context, ev domain.Event, err error) error {
	o.countBackendError(err)
	if errors.Is(err, domain.ErrAuthRejected) {
		o.revokeSession(ctx, ev.UserID)
		return o.send(ctx, ev.ChatID, msgSessionExpired, ports.KeyboardRemove)
	}
	return o.send(ctx, ev.ChatID, failureText(err), ports.KeyboardNone)
}

func (o *Orchestrator) countBackendError(err error) {
	kind := "unavailable"
	switch {
	case errors.Is(err, domain.ErrAuthRejected):
		kind = "auth_rejected"
	case errors.Is(err, domain.ErrRateLimited):
		kind = "rate_limited"
	case errors.Is(err, domain.ErrOutOfRange):
		kind = "out_of_range"
	case errors.Is(err, domain.ErrValidationFailed):
		kind = "validation"
	}
	metrics.BackendErrorsTotal.WithLabelValues(kind).Inc()
}

func (o *Orchestrator) transition(chatID int64, st domain.DialogState) {
	o.dialogs.Set(chatID, st)
	metrics.DialogTransitionsTotal.WithLabelValues(st.Step.String()).Inc()
}

func (o *Orchestrator) resetDialog(chatID int64) {
	o.transition(chatID, domain.DialogState{})
}

func (o *Orchestrator) mainOrNone(ctx context.Context, userID int64) ports.Keyboard {
	if _, ok := o.authSession(ctx, userID); ok {
		return ports.KeyboardMain
	}
	return ports.KeyboardRemove
}

// failureText prefers the backend-supplied message over the generic one.
func failureText(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "❌ " + apiErr.Message
	}
	return msgGenericFailure
}

// parseCommand splits "/cmd payload", folding an @botname suffix.
func parseCommand(text string) (cmd, payload string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	cmd, payload, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(payload)
}
