package clinic

import "fmt"

const (
	// DefaultSupportThreshold: below this wallet balance the user is
	// considered in need and receives an unconditional grant.
	DefaultSupportThreshold = 10.0
	DefaultSupportGrant     = 50.0
)

// WalletSupport is the basic support/amnesty collaborator: anyone whose
// balance falls under the threshold is topped up before any scoring happens.
type WalletSupport struct {
	Threshold float64
	Grant     float64
}

func NewWalletSupport() *WalletSupport {
	return &WalletSupport{
		Threshold: DefaultSupportThreshold,
		Grant:     DefaultSupportGrant,
	}
}

// ProvideSupport mutates the user record when support is granted and returns
// the intervention message, or "" when no intervention is needed.
func (w *WalletSupport) ProvideSupport(user *UserState, _ *Testimony) string {
	if user == nil || user.WalletBalance >= w.Threshold {
		return ""
	}
	user.WalletBalance += w.Grant
	return fmt.Sprintf("Support granted: balance was %.2f, topped up by %.2f. Rest first, create later.",
		user.WalletBalance-w.Grant, w.Grant)
}
