package state

import (
	"testing"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

func TestDialogStore_DefaultsToIdle(t *testing.T) {
	s := NewDialogStore()
	if got := s.Get(1); got.Step != domain.StepIdle {
		t.Fatalf("fresh chat step = %v, want idle", got.Step)
	}
}

func TestDialogStore_SetReplaces(t *testing.T) {
	s := NewDialogStore()

	s.Set(1, domain.DialogState{Step: domain.StepAwaitPhoneContact})
	s.Set(1, domain.DialogState{Step: domain.StepAwaitDisplayName, Phone: "79001234567"})

	got := s.Get(1)
	if got.Step != domain.StepAwaitDisplayName || got.Phone != "79001234567" {
		t.Fatalf("state = %+v, want await_display_name with phone", got)
	}
}

func TestDialogStore_SetIdleDeletes(t *testing.T) {
	s := NewDialogStore()
	s.Set(1, domain.DialogState{Step: domain.StepAwaitRenameInput})
	s.Set(1, domain.DialogState{Step: domain.StepIdle})
	if got := s.Get(1); got.Step != domain.StepIdle {
		t.Fatalf("step = %v, want idle", got.Step)
	}
}

func TestDialogStore_ResetAndIsolation(t *testing.T) {
	s := NewDialogStore()
	s.Set(1, domain.DialogState{Step: domain.StepAwaitRenameInput})
	s.Set(2, domain.DialogState{Step: domain.StepAwaitPhoneContact})

	s.Reset(1)
	if got := s.Get(1); got.Step != domain.StepIdle {
		t.Fatalf("chat 1 step = %v after Reset, want idle", got.Step)
	}
	if got := s.Get(2); got.Step != domain.StepAwaitPhoneContact {
		t.Fatalf("chat 2 step = %v, want untouched", got.Step)
	}
}
