package box

import "context"

type Repository interface {
	ListByCenter(ctx context.Context, centerID int) ([]Box, error)
	GetByCenterAndID(ctx context.Context, centerID, boxID int) (*Box, error)
	Create(ctx context.Context, centerID, number int) (*Box, error)
	UpdateStatus(ctx context.Context, boxID int, status string) error
}
