package models

import "strings"

// TokenRequest is read from the stream-token query string
type TokenRequest struct {
	UserID  string `form:"userId" validate:"required"`
	Members string `form:"members"`
}

// TokenResponse carries a signed messaging platform token
type TokenResponse struct {
	Token string `json:"token"`
}

// TokenRequestFromQuery builds a request from single-valued query parameters
func TokenRequestFromQuery(query map[string]string) *TokenRequest {
	return &TokenRequest{
		UserID:  query["userId"],
		Members: query["members"],
	}
}

// Validate checks the request shape
func (r *TokenRequest) Validate() error {
	return Validate(r)
}

// Identities returns userId followed by the trimmed, non-empty members in
// first-seen order, without duplicates.
func (r *TokenRequest) Identities() []string {
	seen := map[string]struct{}{r.UserID: {}}
	identities := []string{r.UserID}

	for _, member := range strings.Split(r.Members, ",") {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		if _, ok := seen[member]; ok {
			continue
		}
		seen[member] = struct{}{}
		identities = append(identities, member)
	}

	return identities
}
