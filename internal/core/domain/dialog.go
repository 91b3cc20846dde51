package domain

// DialogStep enumerates the wizard steps a conversation can be in. A chat
// holds at most one non-idle step at a time; entering a new step replaces,
// never stacks, the previous one.
type DialogStep int

const (
	StepIdle DialogStep = iota
	// StepAwaitPhoneContact: /login was issued, waiting for a contact card.
	StepAwaitPhoneContact
	// StepAwaitReferralOrSkip: login failed for a new phone, waiting for a
	// referral code or the skip keyword before registration.
	StepAwaitReferralOrSkip
	// StepAwaitDisplayName: waiting for the display name that completes
	// registration.
	StepAwaitDisplayName
	// StepAwaitRenameInput: waiting for a new display name for an existing
	// profile.
	StepAwaitRenameInput
	// StepAwaitReferralEntry: waiting for a referral code entered from the
	// profile menu, outside the registration wizard.
	StepAwaitReferralEntry
)

func (s DialogStep) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepAwaitPhoneContact:
		return "await_phone_contact"
	case StepAwaitReferralOrSkip:
		return "await_referral_or_skip"
	case StepAwaitDisplayName:
		return "await_display_name"
	case StepAwaitRenameInput:
		return "await_rename_input"
	case StepAwaitReferralEntry:
		return "await_referral_entry"
	default:
		return "unknown"
	}
}

// DialogState is the per-conversation wizard record. Phone carries the
// normalized number between the contact step and the registration call.
type DialogState struct {
	Step  DialogStep
	Phone string
}
