package services

import (
	"context"
	"strings"
	"time"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/logger"
)

type BeneficiaryService struct {
	beneficiaryRepo repo_interfaces.BeneficiaryRepository
}

func NewBeneficiaryService(beneficiaryRepo repo_interfaces.BeneficiaryRepository) *BeneficiaryService {
	return &BeneficiaryService{beneficiaryRepo: beneficiaryRepo}
}

func (s *BeneficiaryService) Create(ctx context.Context, req models.CreateBeneficiaryRequest) (commons.Response[models.BeneficiaryResponse], error) {
	logger.Info("beneficiary service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	created, err := s.beneficiaryRepo.Create(ctx, domain.Beneficiary{
		UserID:        strings.TrimSpace(req.UserID),
		Nickname:      strings.TrimSpace(req.Nickname),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountName:   strings.TrimSpace(req.AccountName),
		BankName:      strings.TrimSpace(req.BankName),
		BankCode:      optionalString(req.BankCode),
		RoutingNumber: optionalString(req.RoutingNumber),
		SwiftCode:     optionalString(req.SwiftCode),
		IsFavorite:    req.IsFavorite,
	})
	if err != nil {
		if err == domain.ErrBeneficiaryExists {
			return commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "beneficiary already exists", err.Error()), err
		}
		logger.Error("beneficiary service create failed", err, nil)
		return commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeFor(err), "unable to save beneficiary", err.Error()), err
	}

	return commons.SuccessResponse("beneficiary saved", toBeneficiaryResponse(created)), nil
}

func (s *BeneficiaryService) List(ctx context.Context, userID string) (commons.Response[[]models.BeneficiaryResponse], error) {
	beneficiaries, err := s.beneficiaryRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return commons.ErrorResponse[[]models.BeneficiaryResponse](commons.CodeFor(err), "unable to list beneficiaries", err.Error()), err
	}

	out := make([]models.BeneficiaryResponse, 0, len(beneficiaries))
	for _, b := range beneficiaries {
		out = append(out, toBeneficiaryResponse(b))
	}
	return commons.SuccessResponse("beneficiaries retrieved", out), nil
}

func (s *BeneficiaryService) Delete(ctx context.Context, userID, beneficiaryID string) (commons.Response[models.BeneficiaryResponse], error) {
	err := s.beneficiaryRepo.Delete(ctx, strings.TrimSpace(userID), strings.TrimSpace(beneficiaryID))
	if err != nil {
		return commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeFor(err), "unable to delete beneficiary", err.Error()), err
	}
	return commons.Response[models.BeneficiaryResponse]{Success: true, Message: "beneficiary deleted"}, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toBeneficiaryResponse(b domain.Beneficiary) models.BeneficiaryResponse {
	resp := models.BeneficiaryResponse{
		ID:            b.ID,
		Nickname:      b.Nickname,
		AccountNumber: b.AccountNumber,
		AccountName:   b.AccountName,
		BankName:      b.BankName,
		IsVerified:    b.IsVerified,
		IsFavorite:    b.IsFavorite,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.BankCode != nil {
		resp.BankCode = *b.BankCode
	}
	if b.RoutingNumber != nil {
		resp.RoutingNumber = *b.RoutingNumber
	}
	if b.SwiftCode != nil {
		resp.SwiftCode = *b.SwiftCode
	}
	if b.LastUsed != nil {
		resp.LastUsed = b.LastUsed.Format(time.RFC3339)
	}
	return resp
}
