package services

import (
	"strings"

	"iniva-cms/models"
	"iniva-cms/repositories"
)

type ContactService interface {
	CreateContact(req models.ContactRequest) (*models.Contact, error)
	SubmitContact(req models.ContactRequest) (*models.Contact, error)
	GetContacts() ([]models.Contact, error)
	GetContact(id string) (*models.Contact, error)
	UpdateContact(id string, req models.ContactRequest) (*models.Contact, error)
	PatchContact(id string, req models.ContactPatchRequest) (*models.Contact, error)
	DeleteContact(id string) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
	renderer    *ContentRenderer
}

func NewContactService(contactRepo repositories.ContactRepository, renderer *ContentRenderer) ContactService {
	return &contactService{contactRepo: contactRepo, renderer: renderer}
}

func (s *contactService) CreateContact(req models.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{Status: models.ContactNew}
	if err := applyContactRequest(contact, req); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, classify(err, "contact")
	}
	return contact, nil
}

// SubmitContact stores a message from the public contact form. Markup is
// stripped and the status and replied flag are not caller controlled.
func (s *contactService) SubmitContact(req models.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    s.renderer.PlainText(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   s.renderer.PlainText(req.Phone),
		Subject: s.renderer.PlainText(req.Subject),
		Message: s.renderer.PlainText(req.Message),
		Status:  models.ContactNew,
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, classify(err, "contact")
	}
	return contact, nil
}

func (s *contactService) GetContacts() ([]models.Contact, error) {
	contacts, err := s.contactRepo.GetAll()
	if err != nil {
		return nil, classify(err, "contact")
	}
	return contacts, nil
}

func (s *contactService) GetContact(id string) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "contact")
	}
	return contact, nil
}

func (s *contactService) UpdateContact(id string, req models.ContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "contact")
	}

	if err := applyContactRequest(contact, req); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Update(contact); err != nil {
		return nil, classify(err, "contact")
	}
	return contact, nil
}

func (s *contactService) PatchContact(id string, req models.ContactPatchRequest) (*models.Contact, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, invalid("invalid contact status", "status")
		}
		fields["status"] = *req.Status
	}
	if req.Replied != nil {
		fields["replied"] = *req.Replied
	}
	if len(fields) == 0 {
		return nil, invalid("status or replied is required", "status")
	}

	if err := s.contactRepo.Patch(id, fields); err != nil {
		return nil, classify(err, "contact")
	}
	return s.GetContact(id)
}

func (s *contactService) DeleteContact(id string) error {
	return classify(s.contactRepo.Delete(id), "contact")
}

func applyContactRequest(contact *models.Contact, req models.ContactRequest) error {
	if req.Status != "" {
		if !req.Status.Valid() {
			return invalid("invalid contact status", "status")
		}
		contact.Status = req.Status
	}

	contact.Name = req.Name
	contact.Email = strings.TrimSpace(req.Email)
	contact.Phone = req.Phone
	contact.Subject = req.Subject
	contact.Message = req.Message
	contact.Replied = req.Replied
	return nil
}
