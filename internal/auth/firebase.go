package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/liminal-studio/liminal-backend/config"
)

// FirebaseTokenHeader carries the Firebase ID token when identity proof is
// enabled for token issuance.
const FirebaseTokenHeader = "X-Firebase-Token"

// IdentityProver confirms that the caller owns an email before a token is
// issued for it.
type IdentityProver interface {
	ProveEmail(ctx context.Context, idToken string) (string, error)
}

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*fbauth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseProver verifies Firebase ID tokens and returns their email claim.
type FirebaseProver struct {
	client idTokenVerifier
}

func NewFirebaseProver(client *fbauth.Client) *FirebaseProver {
	return &FirebaseProver{client: client}
}

func (p *FirebaseProver) ProveEmail(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", fmt.Errorf("firebase id token missing")
	}

	decoded, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify firebase id token: %w", err)
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("firebase id token has no email claim")
	}
	return email, nil
}
