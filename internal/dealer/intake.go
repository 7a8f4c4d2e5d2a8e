package dealer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/rlimports/autovitrine/internal/models"
)

// FinancingInput is the financing form payload. Context optionally carries
// the interest annotation inherited from a vehicle detail view.
type FinancingInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Income      string `json:"income"`
	DownPayment string `json:"downPayment"`
	Notes       string `json:"notes"`
	Context     string `json:"context,omitempty"`
}

// Validate enforces the financing form's required fields.
func (in FinancingInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Phone, validation.Required),
		validation.Field(&in.City, validation.Required),
		validation.Field(&in.Income, validation.Required),
		validation.Field(&in.DownPayment, validation.Required),
	)
}

// SellInput is the trade-in/sell form payload.
type SellInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CarModel  string `json:"carModel"`
	CarYear   string `json:"carYear"`
	CarKm     string `json:"carKm"`
	CarPrice  string `json:"carPrice"`
	PhotoLink string `json:"photoLink"`
	Notes     string `json:"notes"`
	Context   string `json:"context,omitempty"`
}

// Validate enforces the sell form's required fields. The photo link is
// optional, matching the form.
func (in SellInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Phone, validation.Required),
		validation.Field(&in.CarModel, validation.Required),
		validation.Field(&in.CarYear, validation.Required),
		validation.Field(&in.CarKm, validation.Required),
		validation.Field(&in.CarPrice, validation.Required),
	)
}

// LeadResult is what a successful intake hands back: the persisted lead and
// the WhatsApp handoff the caller may open. The lead is persisted first and
// unconditionally; a failed handoff never rolls it back.
type LeadResult struct {
	Lead        models.Lead `json:"lead"`
	Message     string      `json:"message"`
	WhatsAppURL string      `json:"whatsappUrl"`
}

// SubmitFinancing validates, persists, and composes the handoff for a
// financing inquiry.
func (s *Service) SubmitFinancing(ctx context.Context, in FinancingInput) (*LeadResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	details := composeDetails(in.Context, fmt.Sprintf(
		"Cidade: %s\nRenda Mensal: R$ %s\nEntrada Proposta: R$ %s\nObs: %s",
		in.City, in.Income, in.DownPayment, in.Notes))
	return s.submitLead(ctx, models.Lead{
		ID:            uuid.NewString(),
		Type:          models.LeadFinancing,
		CustomerName:  in.Name,
		CustomerPhone: in.Phone,
		City:          in.City,
		Details:       details,
		Status:        models.LeadNew,
		Date:          nowMillis(),
	})
}

// SubmitSell validates, persists, and composes the handoff for a
// trade-in/sell inquiry.
func (s *Service) SubmitSell(ctx context.Context, in SellInput) (*LeadResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	details := composeDetails(in.Context, fmt.Sprintf(
		"Veículo de Troca: %s (%s)\nKm: %s\nPreço Pretendido: R$ %s\nFotos: %s\nObs: %s",
		in.CarModel, in.CarYear, in.CarKm, in.CarPrice, in.PhotoLink, in.Notes))
	return s.submitLead(ctx, models.Lead{
		ID:            uuid.NewString(),
		Type:          models.LeadSell,
		CustomerName:  in.Name,
		CustomerPhone: in.Phone,
		Details:       details,
		Status:        models.LeadNew,
		Date:          nowMillis(),
	})
}

func (s *Service) submitLead(_ context.Context, lead models.Lead) (*LeadResult, error) {
	if err := s.store.AppendLead(lead); err != nil {
		return nil, err
	}
	s.logger.Info("lead received",
		slog.String("id", lead.ID),
		slog.String("type", string(lead.Type)),
		slog.String("customer", lead.CustomerName))
	s.publish("lead.created", lead.ID)

	settings, err := s.store.Settings()
	if err != nil {
		// The lead is already durable; degrade to a handoff without a link.
		s.logger.Warn("lead handoff: settings unavailable", slog.String("error", err.Error()))
		settings = models.DefaultSettings()
	}
	msg := handoffMessage(lead)
	return &LeadResult{
		Lead:        lead,
		Message:     msg,
		WhatsAppURL: WhatsAppLink(settings.Phone, msg),
	}, nil
}

// composeDetails prepends the interest context, when present, to the typed
// field composition.
func composeDetails(context, body string) string {
	if context == "" {
		return body
	}
	return fmt.Sprintf("[Interesse: %s]\n%s", context, body)
}

// handoffMessage formats the lead for the human-facing messaging handoff.
func handoffMessage(lead models.Lead) string {
	label := "Financiamento"
	if lead.Type == models.LeadSell {
		label = "Venda/Troca"
	}
	return fmt.Sprintf("*NOVO LEAD DO SITE - %s*\n\n*Tipo:* %s\n*Cliente:* %s\n*Telefone:* %s\n\n%s",
		models.CanonicalStoreName, label, lead.CustomerName, lead.CustomerPhone, lead.Details)
}

// WhatsAppLink builds a wa.me chat composition URL for the given contact
// number (non-digits stripped) and prefilled message.
func WhatsAppLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	// QueryEscape encodes spaces as '+', which wa.me renders literally;
	// percent-encode them instead.
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits.String(), escaped)
}
