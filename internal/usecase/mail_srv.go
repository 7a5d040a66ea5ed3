package usecase

import (
	"context"
	"fmt"

	"ecommerce-demo/internal/dto/request"
	"ecommerce-demo/pkg/mailer"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type MailService interface {
	Send(ctx context.Context, req *request.SendEmailRequest) error
}

type mailService struct {
	mail mailer.Mailer
	log  *zap.Logger
}

func NewMailService(mail mailer.Mailer, log *zap.Logger) MailService {
	return &mailService{mail: mail, log: log.With(zap.String("service", "mail"))}
}

func (ms *mailService) Send(ctx context.Context, req *request.SendEmailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(utils.FormatValidationErrors(errs))
	}
	if err := ms.mail.Send(ctx, req.To, req.Subject, req.Body); err != nil {
		ms.log.Error("Failed to send email", zap.Error(err), zap.String("to", req.To))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}
