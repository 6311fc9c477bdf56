package services

import (
	"iniva-cms/models"
	"iniva-cms/repositories"
)

type StatsService interface {
	GetStats() (*models.Stats, error)
}

type statsService struct {
	userRepo        repositories.UserRepository
	hubRepo         repositories.HubRepository
	appointmentRepo repositories.AppointmentRepository
	contactRepo     repositories.ContactRepository
	postRepo        repositories.BlogPostRepository
}

func NewStatsService(userRepo repositories.UserRepository, hubRepo repositories.HubRepository, appointmentRepo repositories.AppointmentRepository, contactRepo repositories.ContactRepository, postRepo repositories.BlogPostRepository) StatsService {
	return &statsService{
		userRepo:        userRepo,
		hubRepo:         hubRepo,
		appointmentRepo: appointmentRepo,
		contactRepo:     contactRepo,
		postRepo:        postRepo,
	}
}

func (s *statsService) GetStats() (*models.Stats, error) {
	var stats models.Stats
	counters := []struct {
		entity string
		dst    *int64
		count  func() (int64, error)
	}{
		{"user", &stats.Users, s.userRepo.Count},
		{"hub", &stats.Hubs, s.hubRepo.Count},
		{"appointment", &stats.Appointments, s.appointmentRepo.Count},
		{"contact", &stats.Contacts, s.contactRepo.Count},
		{"blog post", &stats.BlogPosts, s.postRepo.Count},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, classify(err, c.entity)
		}
		*c.dst = n
	}
	return &stats, nil
}
