package ports

import (
	"context"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// BackendClient is the club API consumed by the bot. All authenticated
// calls carry the stored token; an auth rejection surfaces as
// domain.ErrAuthRejected and is the sole trigger for local token removal.
type BackendClient interface {
	Login(ctx context.Context, phone, code, referral string) (string, error)
	Register(ctx context.Context, phone, code, name, referral string) (string, error)

	Profile(ctx context.Context, token string) (domain.Profile, error)
	UpdateName(ctx context.Context, token, name string) error
	Balance(ctx context.Context, token string) (int, error)
	Spin(ctx context.Context, token string, lat, lon float64) (domain.SpinResult, error)
	Transactions(ctx context.Context, token string) ([]domain.Transaction, error)
	Prizes(ctx context.Context, token string) ([]domain.Prize, error)

	RecentWins(ctx context.Context) ([]domain.Win, error)
}
