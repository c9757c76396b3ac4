package domain

import "time"

// TicketPass identifies a participant's registration and is carried by the
// ticket view as a signed token.
type TicketPass struct {
	ParticipantID string `json:"participant_id"`
	EventID       string `json:"event_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Code          string `json:"code"`
}

// TicketSigner signs and opens ticket pass tokens (e.g. JWT).
type TicketSigner interface {
	Sign(pass TicketPass, ttl time.Duration) (string, error)
	Open(token string) (TicketPass, error)
}

// TicketCoder derives the short human readable ticket code for a participant.
type TicketCoder interface {
	Code(participantID string) string
}

// IssuedTicket is a signed pass together with its decoded content.
type IssuedTicket struct {
	Token string     `json:"token"`
	Pass  TicketPass `json:"pass"`
}

// TicketService issues and opens ticket passes.
type TicketService interface {
	Issue(p *Participant) (*IssuedTicket, error)
	Open(token string) (TicketPass, error)
}
