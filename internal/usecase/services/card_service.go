package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/logger"
)

// Default limits applied to newly issued cards.
var (
	defaultCardDailyLimit     = decimal.NewFromInt(5000)
	defaultCardMonthlyLimit   = decimal.NewFromInt(50000)
	defaultCardSingleTxnLimit = decimal.NewFromInt(1000)
)

const cardValidityYears = 4

type CardService struct {
	cardRepo repo_interfaces.CardRepository
	ids      IDGenerator
}

func NewCardService(cardRepo repo_interfaces.CardRepository, ids IDGenerator) *CardService {
	return &CardService{cardRepo: cardRepo, ids: ids}
}

func (s *CardService) IssueCard(ctx context.Context, req models.IssueCardRequest) (commons.Response[models.CardResponse], error) {
	logger.Info("card service issue request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	cardNumber, err := s.ids.Generate(ctx, identifier.KindCardNumber)
	if err != nil {
		return cardError(err), err
	}
	cvv, err := randomNumeric(3)
	if err != nil {
		return cardError(err), err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.PIN)), bcrypt.DefaultCost)
	if err != nil {
		return cardError(err), err
	}

	expiry := time.Now().AddDate(cardValidityYears, 0, 0)
	card := domain.Card{
		UserID:                 strings.TrimSpace(req.UserID),
		AccountID:              optionalString(req.AccountID),
		CardNumber:             cardNumber,
		CardType:               domain.CardType(strings.ToUpper(strings.TrimSpace(req.CardType))),
		CardName:               strings.TrimSpace(req.CardName),
		CVV:                    cvv,
		ExpiryMonth:            expiry.Format("01"),
		ExpiryYear:             expiry.Format("2006"),
		PINHash:                string(pinHash),
		DailyLimit:             defaultCardDailyLimit,
		MonthlyLimit:           defaultCardMonthlyLimit,
		SingleTransactionLimit: defaultCardSingleTxnLimit,
		Status:                 domain.CardStatusPending,
		IsVirtual:              req.IsVirtual,
	}

	created, err := s.cardRepo.Create(ctx, card)
	if err != nil {
		logger.Error("card service issue failed", err, logger.Fields{
			"userId": card.UserID,
		})
		return cardError(err), err
	}

	logger.Info("card service issue success", logger.Fields{
		"cardId": created.ID,
		"userId": created.UserID,
	})
	return commons.SuccessResponse("card issued, pending activation", toCardResponse(created)), nil
}

func (s *CardService) ListCards(ctx context.Context, userID string) (commons.Response[[]models.CardResponse], error) {
	cards, err := s.cardRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return commons.ErrorResponse[[]models.CardResponse](commons.CodeFor(err), "unable to list cards", err.Error()), err
	}

	out := make([]models.CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, toCardResponse(card))
	}
	return commons.SuccessResponse("cards retrieved", out), nil
}

// ApplyAction transitions card lifecycle state: activate, block,
// unblock.
func (s *CardService) ApplyAction(ctx context.Context, req models.CardActionRequest) (commons.Response[models.CardResponse], error) {
	logger.Info("card service action request", logger.Fields{
		"cardId": req.CardID,
		"action": req.Action,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	card, err := s.cardRepo.GetByID(ctx, strings.TrimSpace(req.UserID), strings.TrimSpace(req.CardID))
	if err != nil {
		return cardError(err), err
	}

	var status domain.CardStatus
	var reason *string
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "activate":
		if card.Status != domain.CardStatusPending {
			err := fmt.Errorf("%w: only pending cards can be activated", domain.ErrValidation)
			return cardError(err), err
		}
		status = domain.CardStatusActive
	case "block":
		status = domain.CardStatusBlocked
		trimmed := strings.TrimSpace(req.Reason)
		reason = &trimmed
	case "unblock":
		if card.Status != domain.CardStatusBlocked {
			err := fmt.Errorf("%w: only blocked cards can be unblocked", domain.ErrValidation)
			return cardError(err), err
		}
		status = domain.CardStatusActive
	}

	if err := s.cardRepo.UpdateStatus(ctx, card.ID, status, reason); err != nil {
		return cardError(err), err
	}

	updated, err := s.cardRepo.GetByID(ctx, card.UserID, card.ID)
	if err != nil {
		return cardError(err), err
	}
	return commons.SuccessResponse("card updated", toCardResponse(updated)), nil
}

func (s *CardService) UpdateLimits(ctx context.Context, req models.UpdateCardLimitsRequest) (commons.Response[models.CardResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	card, err := s.cardRepo.GetByID(ctx, strings.TrimSpace(req.UserID), strings.TrimSpace(req.CardID))
	if err != nil {
		return cardError(err), err
	}

	update := domain.CardLimitsUpdate{}
	if v := strings.TrimSpace(req.DailyLimit); v != "" {
		parsed, _ := decimal.NewFromString(v)
		update.DailyLimit = &parsed
	}
	if v := strings.TrimSpace(req.MonthlyLimit); v != "" {
		parsed, _ := decimal.NewFromString(v)
		update.MonthlyLimit = &parsed
	}
	if v := strings.TrimSpace(req.SingleTransactionLimit); v != "" {
		parsed, _ := decimal.NewFromString(v)
		update.SingleTransactionLimit = &parsed
	}

	if err := s.cardRepo.UpdateLimits(ctx, card.ID, update); err != nil {
		return cardError(err), err
	}

	updated, err := s.cardRepo.GetByID(ctx, card.UserID, card.ID)
	if err != nil {
		return cardError(err), err
	}
	return commons.SuccessResponse("card limits updated", toCardResponse(updated)), nil
}

func cardError(err error) commons.Response[models.CardResponse] {
	return commons.ErrorResponse[models.CardResponse](commons.CodeFor(err), "card operation failed", err.Error())
}

func toCardResponse(card domain.Card) models.CardResponse {
	resp := models.CardResponse{
		ID:                     card.ID,
		MaskedCardNumber:       maskCardNumber(card.CardNumber),
		CardType:               string(card.CardType),
		CardName:               card.CardName,
		ExpiryMonth:            card.ExpiryMonth,
		ExpiryYear:             card.ExpiryYear,
		DailyLimit:             card.DailyLimit.StringFixed(2),
		MonthlyLimit:           card.MonthlyLimit.StringFixed(2),
		SingleTransactionLimit: card.SingleTransactionLimit.StringFixed(2),
		Status:                 string(card.Status),
		IsVirtual:              card.IsVirtual,
		CreatedAt:              card.CreatedAt.Format(time.RFC3339),
	}
	if card.AccountID != nil {
		resp.AccountID = *card.AccountID
	}
	return resp
}

func maskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return "**** **** **** " + cardNumber[len(cardNumber)-4:]
}

func randomNumeric(n int) (string, error) {
	out := make([]byte, n)
	ten := big.NewInt(10)
	for i := range out {
		idx, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("draw random digit: %w", err)
		}
		out[i] = byte('0' + idx.Int64())
	}
	return string(out), nil
}
