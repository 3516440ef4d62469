package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// WastageService is the loss-event ledger. Product and variant refs
// are lookups for enrichment, not ownership.
type WastageService struct {
	repo   repository.CatalogRepositoryInterface
	logger *logrus.Entry
}

func NewWastageService(repo repository.CatalogRepositoryInterface, logger *logrus.Logger) *WastageService {
	return &WastageService{
		repo:   repo,
		logger: logger.WithField("component", "wastage-service"),
	}
}

// CreateWastage writes the record and its attachments in one
// transaction. The fixed-asset flag is denormalized from the product.
func (s *WastageService) CreateWastage(ctx context.Context, actor models.Actor, req *models.WastageRequest) (*models.WastageView, error) {
	product, err := s.repo.GetProduct(ctx, actor.TenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "proid", Message: "product not found"}
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	wastage := &models.Wastage{
		WastageNo:     req.WastageNo,
		SeriesID:      req.SeriesID,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		IsFixedAsset:  product.IsFixedAsset,
		Quantity:      defaultDecimal(req.Quantity),
		Value:         defaultDecimal(req.Value),
		WastageDate:   req.WastageDate,
		DOM:           req.DOM,
		DOE:           req.DOE,
		BatchCode:     req.BatchCode,
		FactoryCode:   req.FactoryCode,
		Remarks:       req.Remarks,
		UomID:         req.UomID,
		OrgUnitID:     req.OrgUnitID,
		OrgAddressID:  req.OrgAddressID,
		WastageTypeID: req.WastageTypeID,
		TenantID:      actor.TenantID,
		CreatedBy:     actor.UserID,
		UpdatedBy:     actor.UserID,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repository.CatalogRepositoryInterface) error {
		if err := txRepo.CreateWastage(ctx, wastage); err != nil {
			return err
		}
		return txRepo.CreateWastageAttachments(ctx, wastageAttachments(wastage.ID, req.Attachments))
	})
	if err != nil {
		return nil, fmt.Errorf("create wastage: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"wastageId": wastage.ID,
		"productId": wastage.ProductID,
		"tenantId":  actor.TenantID,
	}).Info("Wastage recorded")
	return s.GetWastage(ctx, actor.TenantID, wastage.ID)
}

// UpdateWastage rewrites the record scalars and replaces attachments.
func (s *WastageService) UpdateWastage(ctx context.Context, actor models.Actor, id int64, req *models.WastageRequest) (*models.WastageView, error) {
	product, err := s.repo.GetProduct(ctx, actor.TenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "proid", Message: "product not found"}
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	wastage := &models.Wastage{
		ID:            id,
		WastageNo:     req.WastageNo,
		SeriesID:      req.SeriesID,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		IsFixedAsset:  product.IsFixedAsset,
		Quantity:      defaultDecimal(req.Quantity),
		Value:         defaultDecimal(req.Value),
		WastageDate:   req.WastageDate,
		DOM:           req.DOM,
		DOE:           req.DOE,
		BatchCode:     req.BatchCode,
		FactoryCode:   req.FactoryCode,
		Remarks:       req.Remarks,
		UomID:         req.UomID,
		OrgUnitID:     req.OrgUnitID,
		OrgAddressID:  req.OrgAddressID,
		WastageTypeID: req.WastageTypeID,
		TenantID:      actor.TenantID,
		UpdatedBy:     actor.UserID,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repository.CatalogRepositoryInterface) error {
		if err := txRepo.UpdateWastage(ctx, wastage); err != nil {
			return err
		}
		if err := txRepo.DeleteWastageAttachments(ctx, id); err != nil {
			return err
		}
		return txRepo.CreateWastageAttachments(ctx, wastageAttachments(id, req.Attachments))
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update wastage: %w", err)
	}
	return s.GetWastage(ctx, actor.TenantID, id)
}

// DeleteWastage soft-deletes the record. Attachments stay with the row.
func (s *WastageService) DeleteWastage(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.repo.MarkWastageDeleted(ctx, actor.TenantID, id, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete wastage: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"wastageId": id,
		"tenantId":  actor.TenantID,
	}).Info("Wastage deleted")
	return nil
}

// GetWastage loads one record enriched with product, variant, UOM and
// wastage-type display names.
func (s *WastageService) GetWastage(ctx context.Context, tenantID string, id int64) (*models.WastageView, error) {
	wastage, err := s.repo.GetWastage(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, tenantID, []models.Wastage{*wastage})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListWastages returns a filtered page, default page 1 with 10 rows.
func (s *WastageService) ListWastages(ctx context.Context, tenantID string, filter models.WastageFilter) (*models.WastageListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	wastages, total, err := s.repo.ListWastages(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list wastages: %w", err)
	}
	views, err := s.buildViews(ctx, tenantID, wastages)
	if err != nil {
		return nil, err
	}
	return &models.WastageListResponse{
		Records: views,
		Pagination: models.PaginationInfo{
			TotalItems:   total,
			CurrentPage:  filter.Page,
			TotalPages:   int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
			ItemsPerPage: filter.Limit,
		},
	}, nil
}

func (s *WastageService) buildViews(ctx context.Context, tenantID string, wastages []models.Wastage) ([]models.WastageView, error) {
	views := make([]models.WastageView, 0, len(wastages))
	if len(wastages) == 0 {
		return views, nil
	}

	uomIDs := make([]int64, 0, len(wastages))
	typeIDs := make([]int64, 0, len(wastages))
	for _, w := range wastages {
		uomIDs = append(uomIDs, w.UomID)
		if w.WastageTypeID != 0 {
			typeIDs = append(typeIDs, w.WastageTypeID)
		}
	}
	uomNames, err := s.repo.UomNames(ctx, uomIDs)
	if err != nil {
		return nil, err
	}
	typeNames, err := s.repo.MasterValueNames(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	for _, w := range wastages {
		view := models.WastageView{
			ID:              formatID(w.ID),
			WastageNo:       w.WastageNo,
			SeriesID:        formatID(w.SeriesID),
			ProductID:       formatID(w.ProductID),
			IsFixedAsset:    w.IsFixedAsset,
			Quantity:        w.Quantity,
			Value:           w.Value,
			WastageDate:     w.WastageDate,
			DOM:             w.DOM,
			DOE:             w.DOE,
			BatchCode:       w.BatchCode,
			FactoryCode:     w.FactoryCode,
			Remarks:         w.Remarks,
			UomID:           formatID(w.UomID),
			UomName:         uomNames[w.UomID],
			OrgUnitID:       formatID(w.OrgUnitID),
			OrgAddressID:    formatID(w.OrgAddressID),
			WastageTypeID:   formatID(w.WastageTypeID),
			WastageTypeName: typeNames[w.WastageTypeID],
			Attachments:     []string{},
		}

		if product, err := s.repo.GetProduct(ctx, tenantID, w.ProductID); err == nil {
			view.ProductName = product.Name
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if w.VariantID != nil {
			variantID := formatID(*w.VariantID)
			view.VariantID = &variantID
			variants, err := s.repo.GetVariants(ctx, tenantID, w.ProductID)
			if err != nil {
				return nil, err
			}
			for _, v := range variants {
				if v.ID == *w.VariantID {
					view.VariantName = v.Name
					break
				}
			}
		}

		attachments, err := s.repo.GetWastageAttachments(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range attachments {
			view.Attachments = append(view.Attachments, formatID(a.MediaID))
		}
		views = append(views, view)
	}
	return views, nil
}

func wastageAttachments(wastageID int64, mediaIDs []int64) []models.WastageAttachment {
	attachments := make([]models.WastageAttachment, 0, len(mediaIDs))
	for _, mediaID := range mediaIDs {
		attachments = append(attachments, models.WastageAttachment{WastageID: wastageID, MediaID: mediaID})
	}
	return attachments
}
