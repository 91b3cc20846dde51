package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// Menu button labels. The command handler matches these verbatim, so they
// must stay in sync with the transport's main keyboard.
const (
	LabelBalance = "💰 Balance"
	LabelSpin    = "🎰 Spin"
	LabelProfile = "👤 Profile"
	LabelInvite  = "🤝 Invite"
)

// Callback action tags bound to the profile inline keyboard.
const (
	CallbackRename   = "profile:rename"
	CallbackReferral = "profile:referral"
	CallbackHistory  = "profile:history"
	CallbackPrizes   = "profile:prizes"
)

const skipKeyword = "skip"

// Telegram rejects messages over 4096 chars; keep headroom for the header.
const maxMessageLen = 4000

const (
	maxPrizesShown       = 20
	maxTransactionsShown = 25
	maxWinsShown         = 15
)

const (
	msgLoginFirst     = "Please log in first: /login"
	msgLoginPrompt    = "Tap the button below to share your phone number."
	msgLoggedOut      = "You're logged out. To sign in again: /login"
	msgSessionExpired = "Your session has expired. Please log in again: /login"
	msgCancelled      = "Cancelled."
	msgGenericFailure = "❌ Something went wrong. Please try again."
	msgBadContact     = "Couldn't read that phone number. Tap /login and share your contact again."

	msgReferralPrompt      = "You're new here! If a friend invited you, send their referral code. Otherwise send \"skip\"."
	msgReferralInvalid     = "That doesn't look like a referral code. Send a valid code or \"skip\"."
	msgReferralAccepted    = "Referral code accepted! Now, what should we call you?"
	msgReferralSaved       = "Referral code saved. It will be applied when you register."
	msgReferralEntryPrompt = "Send your friend's referral code."
	msgNamePrompt          = "What should we call you? Send your display name."
	msgNameLikeCode        = "That looks like a referral code, not a name. Please send your display name."
	msgNameInvalid         = "Names are 2–64 characters. Please try again."
	msgRenamePrompt        = "Send your new display name."
	msgRenamed             = "✅ Name updated."

	msgGeoPrompt    = "Share your location to confirm you're at the venue."
	msgGeoConfirmed = "📍 Presence confirmed! Hit \"🎰 Spin\" while it lasts."
	msgOutOfRange   = "📍 Looks like you've left the venue. Share your location again to keep spinning."

	msgSpinning = "🎰 Spinning the wheel…"

	msgNoPrizes  = "🎁 You have no prizes yet."
	msgNoHistory = "📜 Your points history is empty."
	msgNoWins    = "🏆 No recent wins yet."
)

func welcomeText(authenticated bool) string {
	lines := []string{
		"👋 Welcome to the club bot!",
		"",
	}
	if authenticated {
		lines = append(lines, "You're signed in. Use the buttons below or the commands.")
	} else {
		lines = append(lines, "Sign in to access your balance and the roulette.")
	}
	lines = append(lines,
		"",
		"📱 /login — sign in",
		"💰 /balance — points balance",
		"🎰 /spin — spin the roulette",
		"👤 /profile — your profile",
		"🎁 /prizes — your prizes",
		"📜 /history — points history",
		"🏆 /recent — latest wins",
		"🤝 /invite — invite friends",
		"🚪 /logout — sign out",
	)
	return strings.Join(lines, "\n")
}

func loggedInText(phone string) string {
	return fmt.Sprintf("✅ You're in!\nPhone: %s", phone)
}

func registeredText(name string) string {
	return fmt.Sprintf("🎉 Welcome aboard, %s! You're registered and signed in.", name)
}

func balanceText(balance, minForSpin int) string {
	hint := "Tap \"🎰 Spin\" to try your luck."
	if balance < minForSpin {
		hint = fmt.Sprintf("One spin costs %d points.", minForSpin)
	}
	return fmt.Sprintf("💰 Your balance: %d points.\n%s", balance, hint)
}

func spinResultText(res domain.SpinResult) string {
	prize := res.PrizeName
	if prize == "" {
		prize = "a prize"
	}
	return fmt.Sprintf("🎰 The wheel has stopped!\n\n🎁 You won: %s\n💰 New balance: %d points.", prize, res.NewBalance)
}

func rateLimitedText(wait time.Duration) string {
	if wait <= 0 {
		return "⏳ Easy there! Try again in a moment."
	}
	return fmt.Sprintf("⏳ Easy there! Try again in %s.", humanDuration(wait))
}

func profileText(p domain.Profile, sessionExpiry time.Time) string {
	lines := []string{
		"👤 Your profile",
		"",
		"Name: " + orDash(p.Name),
		"Phone: " + orDash(p.Phone),
		"Referral code: " + orDash(p.ReferralCode),
	}
	if !sessionExpiry.IsZero() {
		lines = append(lines, "Session valid until: "+formatDate(sessionExpiry))
	}
	return strings.Join(lines, "\n")
}

func inviteText(code string) string {
	if code == "" {
		return "🤝 Your referral code isn't ready yet. Check back later."
	}
	return fmt.Sprintf("🤝 Invite friends!\n\nYour code: %s\nFriends enter it during registration and you both earn points.", code)
}

func prizesText(prizes []domain.Prize) string {
	if len(prizes) == 0 {
		return msgNoPrizes
	}
	if len(prizes) > maxPrizesShown {
		prizes = prizes[:maxPrizesShown]
	}
	items := make([]string, 0, len(prizes))
	for _, p := range prizes {
		items = append(items, formatPrize(p))
	}
	return truncate("🎁 Your prizes:\n\n" + strings.Join(items, "\n\n"))
}

func historyText(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return msgNoHistory
	}
	if len(txs) > maxTransactionsShown {
		txs = txs[:maxTransactionsShown]
	}
	items := make([]string, 0, len(txs))
	for _, t := range txs {
		items = append(items, formatTransaction(t))
	}
	return truncate("📜 Points history:\n\n" + strings.Join(items, "\n"))
}

func winsText(wins []domain.Win) string {
	if len(wins) == 0 {
		return msgNoWins
	}
	if len(wins) > maxWinsShown {
		wins = wins[:maxWinsShown]
	}
	items := make([]string, 0, len(wins))
	for _, w := range wins {
		phone := w.MaskedPhone
		if phone == "" {
			phone = "***"
		}
		prize := w.PrizeName
		if prize == "" {
			prize = "a prize"
		}
		items = append(items, fmt.Sprintf("%s — %s", phone, prize))
	}
	return truncate("🏆 Latest wins:\n\n" + strings.Join(items, "\n"))
}

func formatTransaction(t domain.Transaction) string {
	label := "➖ Spent"
	sign := "−"
	if t.Earned() {
		label = "➕ Earned"
		sign = "+"
	}
	amount := t.Amount
	if amount < 0 {
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d pts — %s (%s)", label, sign, amount, orDash(t.Description), formatDate(t.CreatedAt))
}

func formatPrize(p domain.Prize) string {
	status := p.Status
	switch status {
	case "pending":
		status = "awaiting confirmation"
	case "confirmed":
		status = "confirmed"
	case "issued":
		status = "issued"
	case "":
		status = "—"
	}
	return fmt.Sprintf("🎁 %s\n   Status: %s\n   Date: %s", orDash(p.Name), status, formatDate(p.WonAt))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006 15:04")
}

func humanDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	return s[:maxMessageLen] + "\n…"
}
