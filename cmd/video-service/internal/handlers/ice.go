package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// IceHandler mints short-lived STUN/TURN credentials for call setup via
// the Twilio Network Traversal API.
type IceHandler struct {
	twilioClient *twilio.RestClient
}

func NewIceHandler(accountSid, authToken string) *IceHandler {
	return &IceHandler{
		twilioClient: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (h *IceHandler) GetIceServers(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.twilioClient == nil {
		http.Error(w, "ICE credentials not configured", http.StatusServiceUnavailable)
		return
	}

	ttl := 86400
	token, err := h.twilioClient.Api.CreateToken(&twilioApi.CreateTokenParams{
		Ttl: &ttl,
	})
	if err != nil {
		log.Printf("[Handlers] Failed to mint ICE token: %v", err)
		http.Error(w, "Failed to get ICE servers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"iceServers": token.IceServers,
	})
}
