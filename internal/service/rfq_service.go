package service

import (
	"context"
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
)

// RFQService renders and dispatches RFQ documents.
type RFQService interface {
	// Document writes the RFQ PDF and returns its path.
	Document(ctx context.Context, id uuid.UUID) (string, *model.RFQ, error)
	// Send queues the RFQ PDF to the supplier's email address.
	Send(ctx context.Context, id uuid.UUID) error
}

type rfqService struct {
	repo    repository.CRUDRepository[model.RFQ]
	jobs    Jobs
	pdfPath string
}

func NewRFQService(repo repository.CRUDRepository[model.RFQ], jobs Jobs, pdfPath string) RFQService {
	return &rfqService{repo: repo, jobs: jobs, pdfPath: pdfPath}
}

func (s *rfqService) Document(ctx context.Context, id uuid.UUID) (string, *model.RFQ, error) {
	rfq, err := s.repo.FindByID(ctx, id, "supplier", "status", "items.product")
	if err != nil {
		return "", nil, err
	}
	path, err := infra.GenerateRFQPDF(rfq, s.pdfPath)
	if err != nil {
		return "", nil, err
	}
	return path, rfq, nil
}

func (s *rfqService) Send(ctx context.Context, id uuid.UUID) error {
	path, rfq, err := s.Document(ctx, id)
	if err != nil {
		return err
	}
	if rfq.Supplier == nil || rfq.Supplier.Email == nil || *rfq.Supplier.Email == "" {
		return apierror.Validation("The RFQ supplier has no email address")
	}
	return s.jobs.EnqueueEmail(ctx, EmailMessage{
		To:             *rfq.Supplier.Email,
		Subject:        fmt.Sprintf("Request for quotation %s", rfq.RFQNumber),
		Body:           "Please find attached our request for quotation.",
		AttachmentPath: path,
	})
}
