package services

import (
	"iniva-cms/models"
	"iniva-cms/repositories"
)

type ActorService interface {
	CreateActor(req models.ActorRequest) (*models.Actor, error)
	GetActors() ([]models.Actor, error)
	GetPublicActors() ([]models.Actor, error)
	GetActor(id string) (*models.Actor, error)
	UpdateActor(id string, req models.ActorRequest) (*models.Actor, error)
	SetActorActive(id string, active bool) (*models.Actor, error)
	DeleteActor(id string) error
}

type actorService struct {
	actorRepo repositories.ActorRepository
}

func NewActorService(actorRepo repositories.ActorRepository) ActorService {
	return &actorService{actorRepo: actorRepo}
}

func (s *actorService) CreateActor(req models.ActorRequest) (*models.Actor, error) {
	actor := &models.Actor{Active: true}
	applyActorRequest(actor, req)

	if err := s.actorRepo.Create(actor); err != nil {
		return nil, classify(err, "actor")
	}
	return actor, nil
}

func (s *actorService) GetActors() ([]models.Actor, error) {
	actors, err := s.actorRepo.GetAll(false)
	if err != nil {
		return nil, classify(err, "actor")
	}
	return actors, nil
}

func (s *actorService) GetPublicActors() ([]models.Actor, error) {
	actors, err := s.actorRepo.GetAll(true)
	if err != nil {
		return nil, classify(err, "actor")
	}
	return actors, nil
}

func (s *actorService) GetActor(id string) (*models.Actor, error) {
	actor, err := s.actorRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "actor")
	}
	return actor, nil
}

func (s *actorService) UpdateActor(id string, req models.ActorRequest) (*models.Actor, error) {
	actor, err := s.actorRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "actor")
	}

	applyActorRequest(actor, req)
	if err := s.actorRepo.Update(actor); err != nil {
		return nil, classify(err, "actor")
	}
	return actor, nil
}

func (s *actorService) SetActorActive(id string, active bool) (*models.Actor, error) {
	if err := s.actorRepo.SetActive(id, active); err != nil {
		return nil, classify(err, "actor")
	}
	return s.GetActor(id)
}

func (s *actorService) DeleteActor(id string) error {
	return classify(s.actorRepo.Delete(id), "actor")
}

func applyActorRequest(actor *models.Actor, req models.ActorRequest) {
	actor.Name = req.Name
	actor.Logo = req.Logo
	actor.Mission = req.Mission
	actor.Programs = req.Programs
	if actor.Programs == nil {
		actor.Programs = models.StringList{}
	}
	actor.Website = req.Website
	actor.Icon = req.Icon
	actor.Color = req.Color
	if req.Active != nil {
		actor.Active = *req.Active
	}
}
