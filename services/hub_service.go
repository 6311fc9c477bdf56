package services

import (
	"iniva-cms/models"
	"iniva-cms/repositories"
)

type HubService interface {
	CreateHub(req models.HubRequest) (*models.Hub, error)
	GetHubs() ([]models.Hub, error)
	GetPublicHubs() ([]models.Hub, error)
	GetHub(id string) (*models.Hub, error)
	UpdateHub(id string, req models.HubRequest) (*models.Hub, error)
	SetHubActive(id string, active bool) (*models.Hub, error)
	DeleteHub(id string) error
}

type hubService struct {
	hubRepo repositories.HubRepository
}

func NewHubService(hubRepo repositories.HubRepository) HubService {
	return &hubService{hubRepo: hubRepo}
}

func (s *hubService) CreateHub(req models.HubRequest) (*models.Hub, error) {
	hub := &models.Hub{Active: true}
	applyHubRequest(hub, req)

	if err := s.hubRepo.Create(hub); err != nil {
		return nil, classify(err, "hub")
	}
	hub.Count = &models.HubCount{}
	return hub, nil
}

// GetHubs returns every hub with its appointment count.
func (s *hubService) GetHubs() ([]models.Hub, error) {
	hubs, err := s.hubRepo.GetAll(false)
	if err != nil {
		return nil, classify(err, "hub")
	}

	ids := make([]string, len(hubs))
	for i := range hubs {
		ids[i] = hubs[i].ID
	}
	counts, err := s.hubRepo.CountAppointments(ids)
	if err != nil {
		return nil, classify(err, "hub")
	}
	for i := range hubs {
		hubs[i].Count = &models.HubCount{Appointments: counts[hubs[i].ID]}
	}
	return hubs, nil
}

func (s *hubService) GetPublicHubs() ([]models.Hub, error) {
	hubs, err := s.hubRepo.GetAll(true)
	if err != nil {
		return nil, classify(err, "hub")
	}
	return hubs, nil
}

func (s *hubService) GetHub(id string) (*models.Hub, error) {
	hub, err := s.hubRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "hub")
	}
	return hub, nil
}

func (s *hubService) UpdateHub(id string, req models.HubRequest) (*models.Hub, error) {
	hub, err := s.hubRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "hub")
	}

	applyHubRequest(hub, req)
	if err := s.hubRepo.Update(hub); err != nil {
		return nil, classify(err, "hub")
	}
	return hub, nil
}

func (s *hubService) SetHubActive(id string, active bool) (*models.Hub, error) {
	if err := s.hubRepo.SetActive(id, active); err != nil {
		return nil, classify(err, "hub")
	}
	return s.GetHub(id)
}

func (s *hubService) DeleteHub(id string) error {
	return classify(s.hubRepo.Delete(id), "hub")
}

func applyHubRequest(hub *models.Hub, req models.HubRequest) {
	hub.Name = req.Name
	hub.Location = req.Location
	hub.Address = req.Address
	hub.Description = req.Description
	hub.Image = req.Image
	hub.Services = req.Services
	if hub.Services == nil {
		hub.Services = models.StringList{}
	}
	hub.Hours = req.Hours
	if req.Active != nil {
		hub.Active = *req.Active
	}
}
