// Package webhook receives identity-provider events. On user.created it
// mirrors the account locally and reconciles any pending invitations
// addressed to the new user's emails.
package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkaul/splitr/internal/invitation"
	"github.com/mkaul/splitr/internal/user"
	"github.com/mkaul/splitr/pkg/response"
)

// signatureHeader carries the hex HMAC-SHA256 of the raw request body.
const signatureHeader = "X-Webhook-Signature"

// Event is the identity-provider event envelope
type Event struct {
	Type string    `json:"type"`
	Data EventUser `json:"data"`
}

// EventUser is the user payload of a user.created event
type EventUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Emails    []string `json:"emails"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

// Handler handles identity-provider webhook deliveries
type Handler struct {
	secret            string
	userService       *user.Service
	invitationService *invitation.Service
}

// NewHandler creates a new webhook handler
func NewHandler(secret string, userService *user.Service, invitationService *invitation.Service) *Handler {
	return &Handler{
		secret:            secret,
		userService:       userService,
		invitationService: invitationService,
	}
}

// Routes returns the router for webhook endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/identity", h.HandleIdentityEvent)

	return r
}

// HandleIdentityEvent handles POST /webhooks/identity
// @Summary      Receive an identity-provider event
// @Description  Verifies the HMAC signature, mirrors new users locally and reconciles pending invitations
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature header string true "Hex HMAC-SHA256 of the request body"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /webhooks/identity [post]
func (h *Handler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		slog.Error("webhook secret not configured")
		response.InternalError(w, "Webhook not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Failed to read request body")
		return
	}

	if !Verify(h.secret, body, r.Header.Get(signatureHeader)) {
		response.BadRequest(w, "Invalid signature")
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		response.BadRequest(w, "Invalid event payload")
		return
	}

	if event.Type != "user.created" {
		// Other event types are acknowledged and ignored.
		response.JSON(w, http.StatusOK, map[string]string{"message": "Event type not handled"})
		return
	}

	if event.Data.ID == "" || len(event.Data.Emails) == 0 {
		response.BadRequest(w, "Event is missing user id or emails")
		return
	}

	u := &user.User{
		ID:        event.Data.ID,
		Name:      event.Data.Name,
		Email:     event.Data.Emails[0],
		AvatarURL: event.Data.AvatarURL,
	}
	if _, err := h.userService.Register(r.Context(), u); err != nil {
		slog.Error("failed to register user from webhook", "user_id", u.ID, "error", err)
		response.InternalError(w, "Failed to register user")
		return
	}

	if err := h.invitationService.ReconcileUser(r.Context(), event.Data.ID, event.Data.Emails); err != nil {
		// The user is registered; remaining invitations will be retried
		// on the provider's redelivery.
		response.InternalError(w, "Failed to process invitations")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Event processed"})
}
