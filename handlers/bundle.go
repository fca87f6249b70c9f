package handlers

import (
	userRepoPkg "karigar/database/repository/user"
	adminSvc "karigar/services/admin"
	bookingSvc "karigar/services/booking"
	providerSvc "karigar/services/provider"
	reviewSvc "karigar/services/review"
	storageSvc "karigar/services/storage"
	userSvc "karigar/services/user"
)

// HandlerBundle groups the endpoint handlers and the services they call.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Users     userSvc.UserService
	Bookings  bookingSvc.BookingService
	Reviews   reviewSvc.ReviewService
	Providers providerSvc.ProviderService
	Admin     adminSvc.AdminService
	Storage   storageSvc.StorageService
}
