package services

import (
	"errors"
	"fmt"
	"time"

	"meetupticket/internal/domain"
)

type ticketService struct {
	signer domain.TicketSigner
	coder  domain.TicketCoder
	ttl    time.Duration
}

// NewTicketService returns a TicketService that signs passes valid for ttl.
func NewTicketService(signer domain.TicketSigner, coder domain.TicketCoder, ttl time.Duration) domain.TicketService {
	return &ticketService{signer: signer, coder: coder, ttl: ttl}
}

func (s *ticketService) Issue(p *domain.Participant) (*domain.IssuedTicket, error) {
	if p == nil || p.ID == "" {
		return nil, errors.New("participant identity is required")
	}
	pass := domain.TicketPass{
		ParticipantID: p.ID,
		EventID:       p.EventID,
		Name:          p.Name,
		Email:         p.Email,
		Code:          s.coder.Code(p.ID),
	}
	token, err := s.signer.Sign(pass, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign ticket: %w", err)
	}
	return &domain.IssuedTicket{Token: token, Pass: pass}, nil
}

func (s *ticketService) Open(token string) (domain.TicketPass, error) {
	if token == "" {
		return domain.TicketPass{}, domain.ErrInvalidTicket
	}
	pass, err := s.signer.Open(token)
	if err != nil {
		return domain.TicketPass{}, fmt.Errorf("%w: %w", domain.ErrInvalidTicket, err)
	}
	return pass, nil
}
