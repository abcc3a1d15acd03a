package service

import (
	"context"
	"time"

	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/store"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// IActorService resolves the acting client for a user identity. It is
// the resolver behind both the permission check and the context
// collection, so lookups are cached briefly.
type IActorService interface {
	Resolve(ctx context.Context, userID string) (*store.Actor, error)
}

type actorService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewActorService(uowFactory unitofwork.RepositoryFactory) IActorService {
	return &actorService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *actorService) Resolve(ctx context.Context, userID string) (*store.Actor, error) {
	if cached, found := s.cache.Get(userID); found {
		return cached.(*store.Actor), nil
	}

	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	client, err := uow.ClientRepository().FindByUserId(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	actor := &store.Actor{
		ID:             client.Id.String(),
		UserID:         client.UserId.String(),
		Name:           client.Name,
		Email:          client.Email,
		Role:           client.Role,
		IsCompanyAdmin: client.IsCompanyAdmin,
	}
	if client.CompanyId != nil {
		actor.CompanyID = client.CompanyId.String()
	}

	s.cache.Set(userID, actor, gocache.DefaultExpiration)
	return actor, nil
}
