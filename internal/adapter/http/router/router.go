package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type MovementRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type BeneficiaryRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type CardRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type LoanRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type NotificationRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type SupportTicketRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	accountController AccountRouteRegistrar,
	movementController MovementRouteRegistrar,
	beneficiaryController BeneficiaryRouteRegistrar,
	cardController CardRouteRegistrar,
	loanController LoanRouteRegistrar,
	notificationController NotificationRouteRegistrar,
	supportTicketController SupportTicketRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if movementController != nil {
		movementController.RegisterRoutes(mux, authMiddleware)
	}
	if beneficiaryController != nil {
		beneficiaryController.RegisterRoutes(mux, authMiddleware)
	}
	if cardController != nil {
		cardController.RegisterRoutes(mux, authMiddleware)
	}
	if loanController != nil {
		loanController.RegisterRoutes(mux, authMiddleware)
	}
	if notificationController != nil {
		notificationController.RegisterRoutes(mux, authMiddleware)
	}
	if supportTicketController != nil {
		supportTicketController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
