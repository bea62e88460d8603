package previous_step

import (
	"context"

	"github.com/aida-cosmetics/ACS-ConsultationService/internal/service/drafts/models"
)

type DraftService interface {
	Previous(ctx context.Context, token string) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
