package domain

import "context"

// OutcomeKind tags a RegistrationOutcome.
type OutcomeKind string

const (
	OutcomeRegistered        OutcomeKind = "registered"
	OutcomeAlreadyRegistered OutcomeKind = "already_registered"
	OutcomeCapacityReached   OutcomeKind = "capacity_reached"
	OutcomeNoActiveEvent     OutcomeKind = "no_active_event"
	OutcomeStoreError        OutcomeKind = "store_error"
)

// RegistrationOutcome is the result of a registration attempt. Participant is set
// for Registered and AlreadyRegistered; Err is set for StoreError.
type RegistrationOutcome struct {
	Kind        OutcomeKind
	Participant *Participant
	Err         error
}

func Registered(p *Participant) RegistrationOutcome {
	return RegistrationOutcome{Kind: OutcomeRegistered, Participant: p}
}

func AlreadyRegistered(p *Participant) RegistrationOutcome {
	return RegistrationOutcome{Kind: OutcomeAlreadyRegistered, Participant: p}
}

func CapacityReached() RegistrationOutcome {
	return RegistrationOutcome{Kind: OutcomeCapacityReached}
}

func NoActiveEvent() RegistrationOutcome {
	return RegistrationOutcome{Kind: OutcomeNoActiveEvent}
}

func StoreError(err error) RegistrationOutcome {
	return RegistrationOutcome{Kind: OutcomeStoreError, Err: err}
}

// HasTicket reports whether the outcome carries a participant identity that can
// be turned into a ticket.
func (o RegistrationOutcome) HasTicket() bool {
	return (o.Kind == OutcomeRegistered || o.Kind == OutcomeAlreadyRegistered) && o.Participant != nil
}

// OutcomeRecorder observes registration outcomes (metrics port).
type OutcomeRecorder interface {
	RecordOutcome(kind OutcomeKind)
}

// RegistrationService runs the eligibility and registration workflow.
type RegistrationService interface {
	// Register registers name/email for event. A nil event yields NoActiveEvent
	// without touching the store. The event is not modified.
	Register(ctx context.Context, event *Event, name, email string) RegistrationOutcome
}

// Submission is the result of a registration submitted through TicketDesk.
// Event is nil when no active event could be loaded; Ticket is set whenever the
// outcome carries a participant identity.
type Submission struct {
	Outcome RegistrationOutcome
	Event   *Event
	Ticket  *IssuedTicket
}

// TicketDesk runs a full submission: load the active event, register, issue the
// ticket pass and send the confirmation email.
type TicketDesk interface {
	Submit(ctx context.Context, name, email string) Submission
}
