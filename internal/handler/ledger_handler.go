package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// User-facing messages
const (
	MsgNameRequired       = "Nome é obrigatório"
	MsgAmountNotNumeric   = "Informe um valor númerico"
	MsgAmountNotPositive  = "O valor não pode ser negativo"
	MsgTypeRequired       = "Selecione o tipo da transação"
	MsgCategoryRequired   = "Selecione a categoria"
	MsgUnknownCategory    = "Categoria inválida"
	MsgSaveFailed         = "Não foi possível salvar"
	MsgLoadFailed         = "Não foi possível carregar as transações"
	MsgInvalidRequestBody = "Invalid request body"
)

// LedgerHandler handles ledger-related HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateTransactionRequest represents the create transaction request body.
// Amount accepts a JSON string or number.
type CreateTransactionRequest struct {
	Name     string          `json:"name"`
	Amount   json.RawMessage `json:"amount" swaggertype:"string"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
}

// TransactionResponse represents a stored transaction in API responses
type TransactionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// LedgerResponse is the aggregated ledger view
type LedgerResponse struct {
	Rows    []domain.DisplayRow  `json:"rows"`
	Summary domain.LedgerSummary `json:"summary"`
	Issues  int                  `json:"issues"`
}

// GetLedger godoc
// @Summary Get the ledger
// @Description Returns every stored transaction formatted for display, with income, outcome and net totals
// @Tags ledger
// @Produce json
// @Success 200 {object} LedgerResponse
// @Failure 500 {object} ProblemDetails
// @Router /ledger [get]
func (h *LedgerHandler) GetLedger(c echo.Context) error {
	ledger, err := h.ledgerService.Load(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load ledger")
		return NewInternalError(c, MsgLoadFailed)
	}

	return c.JSON(http.StatusOK, toLedgerResponse(ledger))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Validates and appends a new income ("up") or outcome ("down") transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [post]
func (h *LedgerHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, MsgInvalidRequestBody, nil)
	}

	candidate := domain.Candidate{
		Name:     req.Name,
		Amount:   amountText(req.Amount),
		Type:     domain.TransactionType(req.Type),
		Category: domain.NoCategory(),
	}
	if key := strings.TrimSpace(req.Category); key != "" {
		candidate.Category = domain.SelectCategory(domain.CategoryKey(key))
	}

	record, err := h.ledgerService.Append(c.Request().Context(), candidate)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			message := validationMessage(validationErr.Err)
			return NewValidationError(c, message, []ValidationError{
				{Field: validationErr.Field, Message: message},
			})
		}
		if domain.IsStorageError(err) {
			log.Error().Err(err).Str("ledger_key", h.ledgerService.Key()).Msg("Failed to persist transaction")
		} else {
			log.Error().Err(err).Msg("Failed to append transaction")
		}
		return NewInternalError(c, MsgSaveFailed)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(record))
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return MsgNameRequired
	case errors.Is(err, domain.ErrAmountNotNumeric):
		return MsgAmountNotNumeric
	case errors.Is(err, domain.ErrAmountNotPositive):
		return MsgAmountNotPositive
	case errors.Is(err, domain.ErrTransactionTypeRequired):
		return MsgTypeRequired
	case errors.Is(err, domain.ErrCategoryRequired):
		return MsgCategoryRequired
	case errors.Is(err, domain.ErrUnknownCategory):
		return MsgUnknownCategory
	default:
		return err.Error()
	}
}

// amountText accepts the amount as a JSON string or a bare number
func amountText(raw json.RawMessage) string {
	return domain.RawRecord{Amount: raw}.AmountText()
}

func toTransactionResponse(r *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:       r.ID,
		Name:     r.Name,
		Amount:   r.Amount,
		Type:     string(r.Type),
		Category: string(r.Category),
		Date:     r.Date.UTC().Format(time.RFC3339Nano),
	}
}

func toLedgerResponse(l *domain.Ledger) LedgerResponse {
	rows := l.Rows
	if rows == nil {
		rows = []domain.DisplayRow{}
	}
	return LedgerResponse{
		Rows:    rows,
		Summary: l.Summary,
		Issues:  len(l.Issues),
	}
}
