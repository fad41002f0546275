package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// CatalogCache caché de lecturas del catálogo de servicios. Un caché caído
// degrada a lecturas de DB, nunca a errores de request.
type CatalogCache interface {
	GetServices(ctx context.Context) ([]dto.ServiceResponse, bool)
	SetServices(ctx context.Context, items []dto.ServiceResponse)
	Invalidate(ctx context.Context)
}

// ServiceUseCase casos de uso del catálogo de servicios y sus recetas.
type ServiceUseCase struct {
	repo       repository.ServiceRepository
	recipeRepo repository.RecipeRepository
	cache      CatalogCache // puede ser nil (caché deshabilitado)
}

// NewServiceUseCase construye el caso de uso. cache puede ser nil.
func NewServiceUseCase(repo repository.ServiceRepository, recipeRepo repository.RecipeRepository, cache CatalogCache) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, recipeRepo: recipeRepo, cache: cache}
}

// Create crea un servicio del catálogo.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.DurationMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	svc := &entity.Service{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toServiceResponse(svc), nil
}

// GetByID obtiene un servicio por ID.
func (uc *ServiceUseCase) GetByID(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	return toServiceResponse(svc), nil
}

// List lista el catálogo con paginación. La primera página sin offset se
// sirve desde caché cuando está disponible.
func (uc *ServiceUseCase) List(ctx context.Context, limit, offset int) (*dto.ServiceListResponse, error) {
	cacheable := uc.cache != nil && offset == 0
	if cacheable {
		if items, ok := uc.cache.GetServices(ctx); ok {
			return &dto.ServiceListResponse{
				Items: items,
				Page:  dto.PageResponse{Limit: limit, Offset: offset},
			}, nil
		}
	}

	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toServiceResponse(s))
	}
	if cacheable {
		uc.cache.SetServices(ctx, items)
	}
	return &dto.ServiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un servicio.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	if in.Name != nil {
		svc.Name = *in.Name
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		svc.Price = *in.Price
	}
	if in.DurationMinutes != nil {
		svc.DurationMinutes = *in.DurationMinutes
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toServiceResponse(svc), nil
}

// Delete elimina un servicio por ID.
func (uc *ServiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// SetRecipe reemplaza la receta completa del servicio.
func (uc *ServiceUseCase) SetRecipe(ctx context.Context, id string, in dto.SetRecipeRequest) (*dto.RecipeResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	items := make([]*entity.RecipeItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.MaterialID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.RecipeItem{
			ServiceID:  id,
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
		})
	}
	if err := uc.recipeRepo.Replace(ctx, id, items); err != nil {
		return nil, err
	}
	return uc.GetRecipe(ctx, id)
}

// GetRecipe devuelve la receta actual del servicio.
func (uc *ServiceUseCase) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.recipeRepo.ListByService(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecipeItemDTO{MaterialID: it.MaterialID, Quantity: it.Quantity})
	}
	return &dto.RecipeResponse{ServiceID: id, Items: out}, nil
}

func (uc *ServiceUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	if s == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
