package store

import "github.com/MKhiriev/go-tours/internal/logger"

// Repositories aggregates every repository backed by the same [DB].
type Repositories struct {
	UserRepository    UserRepository
	TourRepository    TourRepository
	ReviewRepository  ReviewRepository
	BookingRepository BookingRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, log),
		TourRepository:    NewTourRepository(db, log),
		ReviewRepository:  NewReviewRepository(db, log),
		BookingRepository: NewBookingRepository(db, log),
	}
}
