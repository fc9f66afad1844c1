package start_checkout

import startCheckout "github.com/m04kA/SMC-StudioBooking/internal/usecase/start_checkout"

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	URL string `json:"url"`
}

func FromUseCaseResponse(resp *startCheckout.Response) *CheckoutResponse {
	return &CheckoutResponse{URL: resp.URL}
}
