package services

import (
	"context"
	"fmt"
)

// Raw provider ids as the identity provider reports them.
const (
	rawProviderGoogle   = "google.com"
	rawProviderApple    = "apple.com"
	rawProviderPassword = "password"
	rawProviderPhone    = "phone"
	rawProviderFirebase = "firebase"
)

// ProviderAssertion describes one linked provider inside a verified identity
// assertion.
type ProviderAssertion struct {
	ProviderID  string
	SubjectID   string
	Email       string
	DisplayName string
	PhotoURL    string
}

// IdentityAssertion is the verified content of an external identity token.
type IdentityAssertion struct {
	SubjectID     string
	Email         string
	EmailVerified bool
	PhoneNumber   string
	DisplayName   string
	PhotoURL      string
	Providers     []ProviderAssertion
}

// IdentityVerifier is the boundary to the external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityAssertion, error)
}

// FirebaseVerifier verifies Firebase ID tokens and flattens their claims
// into an IdentityAssertion.
type FirebaseVerifier struct {
	client    *FirebaseJWKSClient
	projectID string
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		client:    NewFirebaseJWKSClient(),
		projectID: projectID,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*IdentityAssertion, error) {
	claims, err := v.client.VerifyToken(idToken, v.projectID)
	if err != nil {
		return nil, fmt.Errorf("firebase token verification failed: %w", err)
	}

	assertion := &IdentityAssertion{
		SubjectID:     claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		PhoneNumber:   claims.PhoneNumber,
		DisplayName:   claims.Name,
		PhotoURL:      claims.Picture,
	}

	for providerID, subjects := range claims.Firebase.Identities {
		p := ProviderAssertion{
			ProviderID:  providerID,
			DisplayName: claims.Name,
			PhotoURL:    claims.Picture,
		}
		if len(subjects) > 0 {
			p.SubjectID = subjects[0]
		}
		if providerID == rawProviderGoogle || providerID == rawProviderApple {
			p.Email = claims.Email
		}
		assertion.Providers = append(assertion.Providers, p)
	}

	return assertion, nil
}
