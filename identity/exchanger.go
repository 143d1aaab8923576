package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
)

// Exchanger converts a provider-issued one-time authorization code into a
// Credential, guarding the exchange with the anti-forgery state check.
type Exchanger struct {
	provider *Provider
}

func NewExchanger(provider *Provider) *Exchanger {
	return &Exchanger{provider: provider}
}

// Exchange validates the state token from the request against the one stored
// in the session, then performs the server-side code exchange. A state
// mismatch aborts before any provider contact. There are no retries: a
// failed exchange means the browser restarts the flow with a fresh state.
func (e *Exchanger) Exchange(ctx context.Context, requestState, storedState, code string) (Credential, error) {
	if storedState == "" || subtle.ConstantTimeCompare([]byte(requestState), []byte(storedState)) != 1 {
		return Credential{}, InvalidStateErr
	}

	cred, err := e.provider.Exchange(ctx, code)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ExchangeFailedErr, err)
	}
	return cred, nil
}
