package users

import (
	"context"

	"github.com/dmitrijs2005/todoweb/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddExperience(ctx context.Context, id int64, delta int64) (*models.User, error)
}
